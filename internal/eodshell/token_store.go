package eodshell

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const keyringService = "gymlog-eod"

var ErrNoToken = errors.New("no stored session token")

// TokenStore keeps the session token in the OS keyring, one entry per backend URL.
type TokenStore struct {
	user string
}

func NewTokenStore(baseURL string) *TokenStore {
	return &TokenStore{user: baseURL}
}

func (ts *TokenStore) Get() (string, error) {
	token, err := keyring.Get(keyringService, ts.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", err
	}
	return token, nil
}

func (ts *TokenStore) Set(token string) error {
	return keyring.Set(keyringService, ts.user, token)
}

func (ts *TokenStore) Delete() error {
	err := keyring.Delete(keyringService, ts.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
