// Package vault stores the GitHub API token encrypted at rest, so it never
// sits in plaintext config. The token lives in a single age-encrypted file
// (passphrase-based scrypt) at the XDG data path, written atomically.
package vault

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"

	"github.com/awray/streakcard/internal/config"
)

// ErrWrongPassphrase is returned when decryption fails due to a bad passphrase.
var ErrWrongPassphrase = errors.New("wrong passphrase")

// ErrCorrupted is returned when the vault file exists but cannot be parsed.
var ErrCorrupted = errors.New("vault file is corrupted or unreadable")

// ErrNoToken is returned when no token has been stored yet.
var ErrNoToken = errors.New("no token stored — run `streakcard auth set`")

// contents is the plaintext JSON inside the age file.
type contents struct {
	GitHubToken string `json:"github_token"`
}

// Vault manages the encrypted token file.
type Vault struct {
	path       string
	passphrase string
}

// New creates a Vault backed by the XDG data path.
func New(passphrase string) *Vault {
	return &Vault{
		path:       config.GetPaths().VaultFile,
		passphrase: passphrase,
	}
}

// newWithPath creates a Vault at an explicit path (used in tests).
func newWithPath(path, passphrase string) *Vault {
	return &Vault{path: path, passphrase: passphrase}
}

// SetToken encrypts and stores the GitHub token.
func (v *Vault) SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("token must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(v.path), 0o700); err != nil {
		return fmt.Errorf("creating vault directory: %w", err)
	}

	raw, err := encrypt(&contents{GitHubToken: token}, v.passphrase)
	if err != nil {
		return err
	}
	return atomicWrite(v.path, raw)
}

// Token decrypts and returns the stored GitHub token.
// Returns ErrNoToken when the vault file does not exist,
// ErrWrongPassphrase on a bad passphrase, and ErrCorrupted when the file
// cannot be decrypted or parsed.
func (v *Vault) Token() (string, error) {
	raw, err := os.ReadFile(v.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", err
	}

	data, err := decrypt(raw, v.passphrase)
	if err != nil {
		return "", err
	}
	if data.GitHubToken == "" {
		return "", ErrNoToken
	}
	return data.GitHubToken, nil
}

// Clear removes the stored token by deleting the vault file.
func (v *Vault) Clear() error {
	if err := os.Remove(v.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing vault: %w", err)
	}
	return nil
}

// Exists reports whether a vault file is present.
func (v *Vault) Exists() bool {
	_, err := os.Stat(v.path)
	return err == nil
}

// Path returns the vault file path.
func (v *Vault) Path() string {
	return v.path
}

// encrypt serializes and encrypts vault contents with age scrypt.
func encrypt(data *contents, passphrase string) ([]byte, error) {
	plain, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("serializing vault: %w", err)
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age recipient: %w", err)
	}

	var buf bytes.Buffer
	armorWriter := armor.NewWriter(&buf)

	w, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing encryption: %w", err)
	}
	if _, err := w.Write(plain); err != nil {
		return nil, fmt.Errorf("encrypting vault: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}

	return buf.Bytes(), nil
}

// decrypt decrypts and deserializes vault contents.
func decrypt(raw []byte, passphrase string) (*contents, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age identity: %w", err)
	}

	r, err := age.Decrypt(armor.NewReader(bytes.NewReader(raw)), identity)
	if err != nil {
		// age has no typed error for a bad passphrase; match its known
		// message wording to tell that case apart from corruption.
		msg := err.Error()
		if strings.Contains(msg, "no identity matched") || strings.Contains(msg, "incorrect") {
			return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	plain, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading decrypted data: %v", ErrCorrupted, err)
	}

	var data contents
	if err := json.Unmarshal(plain, &data); err != nil {
		return nil, fmt.Errorf("%w: parsing vault JSON: %v", ErrCorrupted, err)
	}
	return &data, nil
}

// atomicWrite writes data to path via temp file, fsync, then rename.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vault-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if err := os.Chmod(tmpName, 0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting temp file permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing vault: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("fsyncing vault: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("committing vault file: %w", err)
	}

	success = true
	return nil
}
