package duckdb

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// idNamespace scopes the deterministic row ids of this database.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("quizharvest"))

// CanonicalJSON returns deterministic JSON bytes for hashing and storage.
// Object keys are sorted; array order is kept.
func CanonicalJSON(value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("canonical json: %w", err)
	}
	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("canonical json: %w", err)
	}
	return json.Marshal(decoded)
}

// FingerprintJSON returns a SHA-256 hex digest for the canonical JSON.
func FingerprintJSON(value interface{}) (string, error) {
	data, err := CanonicalJSON(value)
	if err != nil {
		return "", err
	}
	return fingerprintBytes(data), nil
}

func fingerprintBytes(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// TestID returns the stable id of a test name.
func TestID(name string) uuid.UUID {
	return uuid.NewSHA1(idNamespace, []byte("test:"+name))
}

// QuestionID returns the stable id of a question key.
func QuestionID(key string) uuid.UUID {
	return uuid.NewSHA1(idNamespace, []byte("question:"+key))
}
