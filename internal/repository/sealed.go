package repository

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/and161185/fightnight/internal/crypto/clientcrypto"
	"github.com/and161185/fightnight/internal/errs"
)

const (
	// SaltKey holds the plaintext Argon2id salt for the sealing passphrase.
	SaltKey = "persist:salt"

	sealedPrefix = "sealed:v1:"
)

// SealedKV encrypts values before handing them to the wrapped repository.
// The entry key is bound as AAD, so a value copied under another key fails to open.
type SealedKV struct {
	inner  KVRepository
	master []byte
}

// NewSealedKV derives the master key from passphrase, creating and storing a
// salt on first use.
func NewSealedKV(ctx context.Context, inner KVRepository, passphrase string) (*SealedKV, error) {
	if passphrase == "" {
		return nil, errors.New("sealed kv: empty passphrase")
	}
	salt, err := loadOrCreateSalt(ctx, inner)
	if err != nil {
		return nil, err
	}
	return &SealedKV{inner: inner, master: clientcrypto.DeriveKey([]byte(passphrase), salt)}, nil
}

func loadOrCreateSalt(ctx context.Context, inner KVRepository) ([]byte, error) {
	enc, err := inner.Get(ctx, SaltKey)
	switch {
	case err == nil:
		salt, derr := base64.StdEncoding.DecodeString(enc)
		if derr != nil {
			return nil, fmt.Errorf("decode salt: %w", derr)
		}
		return salt, nil
	case errors.Is(err, errs.ErrNotFound):
		salt, rerr := clientcrypto.Rand(clientcrypto.SaltLen)
		if rerr != nil {
			return nil, rerr
		}
		if serr := inner.Set(ctx, SaltKey, base64.StdEncoding.EncodeToString(salt)); serr != nil {
			return nil, serr
		}
		return salt, nil
	default:
		return nil, err
	}
}

// Get opens the stored value. Values written before sealing was enabled are
// returned unchanged.
func (s *SealedKV) Get(ctx context.Context, key string) (string, error) {
	v, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if !IsSealed(v) {
		return v, nil
	}
	blob, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(v, sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", key, err)
	}
	ek, err := clientcrypto.DeriveEntryKey(s.master, []byte(key))
	if err != nil {
		return "", err
	}
	pt, err := clientcrypto.Open(ek, []byte(key), blob)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %w", errs.ErrSealed, key, err)
	}
	return string(pt), nil
}

// IsSealed reports whether a raw stored value was written by SealedKV.
func IsSealed(v string) bool { return strings.HasPrefix(v, sealedPrefix) }

// Set seals value and stores it under key.
func (s *SealedKV) Set(ctx context.Context, key, value string) error {
	ek, err := clientcrypto.DeriveEntryKey(s.master, []byte(key))
	if err != nil {
		return err
	}
	blob, err := clientcrypto.Seal(ek, []byte(key), []byte(value))
	if err != nil {
		return fmt.Errorf("seal %s: %w", key, err)
	}
	return s.inner.Set(ctx, key, sealedPrefix+base64.StdEncoding.EncodeToString(blob))
}

// Delete removes key from the wrapped repository.
func (s *SealedKV) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}
