package main

import (
	"encoding/base64"
	"errors"
	"os"
	"unicode/utf8"
)

func DecodeConfig(openVPNConfigDataBase64 string) ([]byte, error) {
	conf, err := base64.StdEncoding.DecodeString(openVPNConfigDataBase64)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if !utf8.Valid(conf) {
		return nil, &DecodeError{Err: errors.New("config is not valid UTF-8 text")}
	}
	return conf, nil
}

// WriteConfig decodes the server's OpenVPN config and writes it to path,
// replacing any previous file.
func WriteConfig(openVPNConfigDataBase64, path string) error {
	conf, err := DecodeConfig(openVPNConfigDataBase64)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return &IOError{Path: path, Err: err}
	}

	if _, err := f.Write(conf); err != nil {
		f.Close()
		return &IOError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Path: path, Err: err}
	}
	return nil
}
