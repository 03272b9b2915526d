// Package gpg provides detached OpenPGP signing and verification of artifacts.
package gpg

import (
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// armoredSigPrefix is the start of an ASCII-armored signature block
const armoredSigPrefix = "-----BEGIN PGP SIGNATURE---"

// Signer signs and verifies files with keys loaded from local key files,
// using ProtonMail's maintained fork of golang.org/x/crypto/openpgp
type Signer struct {
	keyring openpgp.EntityList
}

// NewSigner creates a signer with an empty keyring
func NewSigner() *Signer {
	return &Signer{
		keyring: make(openpgp.EntityList, 0),
	}
}

// ImportKeyFromFile imports public or private keys from an armored or binary key file
func (s *Signer) ImportKeyFromFile(keyPath string) error {
	entities, err := readKeyFile(keyPath)
	if err != nil {
		return err
	}

	s.keyring = append(s.keyring, entities...)
	return nil
}

// ImportPrivateKeyFromFile imports a private key, unlocking it with passphrase
// when it is encrypted
func (s *Signer) ImportPrivateKeyFromFile(keyPath string, passphrase []byte) error {
	entities, err := readKeyFile(keyPath)
	if err != nil {
		return err
	}

	for _, entity := range entities {
		if entity.PrivateKey == nil {
			return fmt.Errorf("key file %s does not contain a private key", keyPath)
		}
		if err := decryptEntity(entity, passphrase); err != nil {
			return err
		}
	}

	s.keyring = append(s.keyring, entities...)
	return nil
}

// SignFile writes an ASCII-armored detached signature of filePath to sigPath,
// using the first private key in the keyring
func (s *Signer) SignFile(filePath, sigPath string) (err error) {
	signer := s.signingEntity()
	if signer == nil {
		return fmt.Errorf("no private GPG key imported, call ImportPrivateKeyFromFile first")
	}

	//nolint:gosec // G304: filePath is the artifact being signed
	data, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer data.Close()

	//nolint:gosec // G304: sigPath is derived from the artifact path
	out, err := os.Create(sigPath)
	if err != nil {
		return fmt.Errorf("failed to create signature file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close signature file: %w", closeErr)
		}
	}()

	if err := openpgp.ArmoredDetachSign(out, signer, data, nil); err != nil {
		return fmt.Errorf("failed to sign %s: %w", filePath, err)
	}

	return nil
}

// VerifySignatureFromFile verifies a detached signature from a local file
func (s *Signer) VerifySignatureFromFile(filePath, sigPath string) error {
	if len(s.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported, call ImportKeyFromFile first")
	}

	//nolint:gosec // G304: sigPath is user-provided for GPG verification
	sigFile, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("failed to open signature file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer sigFile.Close()

	//nolint:gosec // G304: filePath is user-provided for GPG verification
	dataFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer dataFile.Close()

	// Peek at signature file to determine if it's armored
	peekBuf := make([]byte, len(armoredSigPrefix))
	n, _ := io.ReadFull(sigFile, peekBuf)
	isArmored := n == len(armoredSigPrefix) && string(peekBuf) == armoredSigPrefix

	if _, seekErr := sigFile.Seek(0, io.SeekStart); seekErr != nil {
		return fmt.Errorf("failed to reset signature file: %w", seekErr)
	}

	var verifyErr error
	if isArmored {
		_, verifyErr = openpgp.CheckArmoredDetachedSignature(s.keyring, dataFile, sigFile, nil)
	} else {
		_, verifyErr = openpgp.CheckDetachedSignature(s.keyring, dataFile, sigFile, nil)
	}

	if verifyErr != nil {
		return fmt.Errorf("signature verification failed: %w", verifyErr)
	}

	return nil
}

func (s *Signer) signingEntity() *openpgp.Entity {
	for _, entity := range s.keyring {
		if entity.PrivateKey != nil && !entity.PrivateKey.Encrypted {
			return entity
		}
	}
	return nil
}

func readKeyFile(keyPath string) (openpgp.EntityList, error) {
	//nolint:gosec // G304: keyPath is user-provided for GPG key import
	f, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	entities, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		// Try reading as binary
		if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
			return nil, fmt.Errorf("failed to reset file: %w", seekErr)
		}
		entities, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entities) == 0 {
		return nil, fmt.Errorf("no keys found in file")
	}

	return entities, nil
}

func decryptEntity(entity *openpgp.Entity, passphrase []byte) error {
	if entity.PrivateKey.Encrypted {
		if len(passphrase) == 0 {
			return fmt.Errorf("private key is encrypted and no passphrase was given")
		}
		if err := entity.PrivateKey.Decrypt(passphrase); err != nil {
			return fmt.Errorf("failed to unlock private key: %w", err)
		}
	}

	for _, sub := range entity.Subkeys {
		if sub.PrivateKey == nil || !sub.PrivateKey.Encrypted {
			continue
		}
		if err := sub.PrivateKey.Decrypt(passphrase); err != nil {
			return fmt.Errorf("failed to unlock private subkey: %w", err)
		}
	}

	return nil
}
