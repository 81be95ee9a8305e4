package cmd

import (
	"bytes"
	"compress/gzip"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"

	ledger "github.com/alonsix6/sistema-financiero-sub000"
)

// The snapshot file has two on-disk forms. Without a PIN it is plain JSONL.
// With a PIN set, the JSONL stream is gzipped and sealed with AES-256-GCM
// under a key derived from the PIN; the file starts with a fixed magic so
// loading can tell the two apart.

var encMagic = []byte("SISFIN1\x00")

// deriveKey turns the PIN into a 32-byte AES key.
func deriveKey(pin string) []byte {
	sum := sha256.Sum256([]byte("sisfin-snapshot:" + pin))
	return sum[:]
}

// seal compresses and encrypts the snapshot bytes.
func seal(plaintext []byte, pin string) ([]byte, error) {
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	if _, err := zw.Write(plaintext); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(deriveKey(pin))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	out := append([]byte{}, encMagic...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, compressed.Bytes(), nil)
	return out, nil
}

// open decrypts and decompresses a sealed snapshot.
func open(sealed []byte, pin string) ([]byte, error) {
	sealed = sealed[len(encMagic):]

	block, err := aes.NewCipher(deriveKey(pin))
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("snapshot is truncated")
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	compressed, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, errors.New("wrong PIN or corrupted snapshot")
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// loadSnapshot reads a ledger from disk, transparently decrypting when the
// file is sealed.
func loadSnapshot(filename string) (*ledger.Ledger, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	if bytes.HasPrefix(data, encMagic) {
		pin, err := sessionPIN()
		if err != nil {
			return nil, err
		}
		if data, err = open(data, pin); err != nil {
			return nil, err
		}
	}
	return ledger.DecodeLedger(bytes.NewReader(data))
}

// saveSnapshot writes a ledger to disk, sealing it when a PIN is configured.
// The write goes through a temp file and a rename, so a crash cannot leave a
// half-written snapshot behind.
func saveSnapshot(filename string, l *ledger.Ledger) error {
	var buf bytes.Buffer
	if err := ledger.EncodeLedger(&buf, l); err != nil {
		return err
	}
	data := buf.Bytes()

	if pinIsSet() {
		pin, err := sessionPIN()
		if err != nil {
			return err
		}
		if data, err = seal(data, pin); err != nil {
			return err
		}
	}

	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, filename); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot replace snapshot: %w", err)
	}
	return nil
}
