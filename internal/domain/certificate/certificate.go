// Package certificate builds, hashes and verifies module completion certificates.
//
// The digest covers the compact JSON encoding of Record with fields in
// declaration order, so the struct layout is part of the format.
package certificate

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	Version  = "1.0"
	Issuer   = "Emprende Voz"
	Platform = "Emprende Voz"
	Type     = "digital_certificate"

	// IssuedAtLayout renders UTC instants with millisecond precision and a Z suffix.
	IssuedAtLayout = "2006-01-02T15:04:05.000Z"
)

type Metadata struct {
	Platform string `json:"platform"`
	Type     string `json:"type"`
}

type Record struct {
	CertificateVersion string   `json:"certificate_version"`
	ModuleID           string   `json:"module_id"`
	ModuleTitle        string   `json:"module_title"`
	UserID             string   `json:"user_id"`
	IssuedAt           string   `json:"issued_at"`
	Issuer             string   `json:"issuer"`
	Metadata           Metadata `json:"metadata"`
}

// Signed pairs a record with its digest; it is also the download format.
type Signed struct {
	Cert Record `json:"cert"`
	Hash string `json:"hash"`
}

// NewRecord fills the fixed fields for a module completion.
func NewRecord(moduleID, moduleTitle, userID string, issuedAt time.Time) Record {
	return Record{
		CertificateVersion: Version,
		ModuleID:           moduleID,
		ModuleTitle:        moduleTitle,
		UserID:             userID,
		IssuedAt:           issuedAt.UTC().Format(IssuedAtLayout),
		Issuer:             Issuer,
		Metadata:           Metadata{Platform: Platform, Type: Type},
	}
}

// Canonical returns the compact JSON text that is hashed.
func Canonical(r Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Hash returns the lowercase hex SHA-256 of the canonical text.
func Hash(r Record) (string, error) {
	b, err := Canonical(r)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// Issue builds and signs a record.
func Issue(moduleID, moduleTitle, userID string, issuedAt time.Time) (Signed, error) {
	r := NewRecord(moduleID, moduleTitle, userID, issuedAt)
	h, err := Hash(r)
	if err != nil {
		return Signed{}, err
	}
	return Signed{Cert: r, Hash: h}, nil
}

// Verify recomputes the digest of r and compares it with hash.
func Verify(r Record, hash string) bool {
	h, err := Hash(r)
	if err != nil {
		return false
	}
	return h == hash
}

// Valid reports whether s carries the digest of its own record.
func (s Signed) Valid() bool { return Verify(s.Cert, s.Hash) }

// MarshalDownload renders s indented by two spaces.
func MarshalDownload(s Signed) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Presented is a certificate as a holder hands it back. The record is kept
// byte-exact so verification covers exactly what was presented.
type Presented struct {
	Cert json.RawMessage `json:"cert"`
	Hash string          `json:"hash"`
}

// Record decodes the presented record, rejecting keys outside the format.
func (p Presented) Record() (Record, error) {
	var r Record
	dec := json.NewDecoder(bytes.NewReader(p.Cert))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return Record{}, fmt.Errorf("decode certificate: %w", err)
	}
	if dec.More() {
		return Record{}, errors.New("decode certificate: trailing data")
	}
	return r, nil
}

// Valid holds only when the presented record, whitespace aside, is the
// canonical text of a Record and hashes to Hash. Extra, renamed,
// duplicated or reordered keys all change that text.
func (p Presented) Valid() bool {
	r, err := p.Record()
	if err != nil {
		return false
	}
	canon, err := Canonical(r)
	if err != nil {
		return false
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, p.Cert); err != nil {
		return false
	}
	if !bytes.Equal(compact.Bytes(), canon) {
		return false
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]) == p.Hash
}

// ParseDownload reads the download format back without normalizing the record.
func ParseDownload(b []byte) (Presented, error) {
	var p Presented
	if err := json.Unmarshal(b, &p); err != nil {
		return Presented{}, fmt.Errorf("parse certificate: %w", err)
	}
	if len(p.Cert) == 0 {
		return Presented{}, errors.New("parse certificate: missing cert")
	}
	return p, nil
}

// DownloadFilename names the downloaded file after the module and the instant in unix millis.
func DownloadFilename(moduleID string, at time.Time) string {
	return fmt.Sprintf("certificado_%s_%d.json", moduleID, at.UnixMilli())
}
