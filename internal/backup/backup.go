// Package backup writes and reads passphrase-encrypted diary backups.
//
// A backup is a JSON snapshot of every plan and check-in, encrypted with
// age (scrypt recipient) and ASCII-armored, so it can be stored anywhere.
// Files are written atomically: temp file, fsync, rename.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/google/uuid"

	"github.com/rnwolfe/fitdiary/internal/diary"
)

// FormatVersion is bumped when the snapshot layout changes incompatibly.
const FormatVersion = 1

// workFactor overrides age's scrypt cost (log2 N) when non-zero.
var workFactor int

// ErrWrongPassphrase is returned when decryption fails due to a bad passphrase.
var ErrWrongPassphrase = errors.New("wrong passphrase")

// ErrCorruptedBackup is returned when a backup cannot be decrypted or parsed.
var ErrCorruptedBackup = errors.New("backup file is corrupted or unreadable")

// Manifest describes a backup.
type Manifest struct {
	ID        uuid.UUID `json:"id"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	AppVer    string    `json:"app_version,omitempty"`
}

// Snapshot is the plaintext content of a backup.
type Snapshot struct {
	Manifest Manifest     `json:"manifest"`
	Plans    []diary.Plan `json:"plans"`
	Logs     []diary.Log  `json:"logs"`
}

// NewSnapshot stamps plans and logs with a fresh manifest.
func NewSnapshot(plans []diary.Plan, logs []diary.Log, appVersion string, now time.Time) *Snapshot {
	return &Snapshot{
		Manifest: Manifest{
			ID:        uuid.New(),
			Version:   FormatVersion,
			CreatedAt: now.UTC(),
			AppVer:    appVersion,
		},
		Plans: plans,
		Logs:  logs,
	}
}

// Validate checks the snapshot is internally consistent: every log points
// at a plan in the snapshot and (plan, day) pairs are unique once days are
// re-keyed to local midnight.
func (s *Snapshot) Validate() error {
	if s.Manifest.Version > FormatVersion {
		return fmt.Errorf("backup format v%d is newer than supported v%d", s.Manifest.Version, FormatVersion)
	}
	plans := make(map[int64]bool, len(s.Plans))
	for _, p := range s.Plans {
		if plans[p.ID] {
			return fmt.Errorf("duplicate plan #%d", p.ID)
		}
		plans[p.ID] = true
	}
	type key struct {
		plan int64
		day  int64
	}
	seen := make(map[key]bool, len(s.Logs))
	for _, l := range s.Logs {
		if !plans[l.PlanID] {
			return fmt.Errorf("log on %s references unknown plan #%d", l.Day, l.PlanID)
		}
		k := key{l.PlanID, l.Day.Normalize().Millis()}
		if seen[k] {
			return fmt.Errorf("duplicate log for plan #%d on %s", l.PlanID, l.Day)
		}
		seen[k] = true
	}
	return nil
}

// Encode encrypts snap with passphrase and writes the armored result to w.
func Encode(w io.Writer, snap *Snapshot, passphrase string) error {
	if passphrase == "" {
		return fmt.Errorf("passphrase must not be empty")
	}
	jsonBytes, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("serializing backup: %w", err)
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating age recipient: %w", err)
	}
	if workFactor > 0 {
		recipient.SetWorkFactor(workFactor)
	}

	armorWriter := armor.NewWriter(w)
	enc, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		return fmt.Errorf("initializing age encryption: %w", err)
	}
	if _, err := enc.Write(jsonBytes); err != nil {
		return fmt.Errorf("encrypting backup: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return fmt.Errorf("finalizing armor: %w", err)
	}
	return nil
}

// Decode decrypts and parses a backup read from r.
func Decode(r io.Reader, passphrase string) (*Snapshot, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age identity: %w", err)
	}

	dec, err := age.Decrypt(armor.NewReader(r), identity)
	if err != nil {
		// age has no typed error for a bad passphrase; match its wording.
		msg := err.Error()
		if strings.Contains(msg, "no identity matched") || strings.Contains(msg, "incorrect") {
			return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptedBackup, err)
	}

	plaintext, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: reading decrypted data: %v", ErrCorruptedBackup, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(plaintext, &snap); err != nil {
		return nil, fmt.Errorf("%w: parsing backup JSON: %v", ErrCorruptedBackup, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptedBackup, err)
	}
	return &snap, nil
}

// Take reads the whole diary into a new snapshot.
func Take(ctx context.Context, s *diary.Store, appVersion string, now time.Time) (*Snapshot, error) {
	plans, err := s.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.ListLogs(ctx)
	if err != nil {
		return nil, err
	}
	return NewSnapshot(plans, logs, appVersion, now), nil
}

// Restore replaces the diary with the snapshot's contents.
func Restore(ctx context.Context, s *diary.Store, snap *Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptedBackup, err)
	}
	return s.Replace(ctx, snap.Plans, snap.Logs)
}

// WriteFile encrypts snap to path atomically.
func WriteFile(path string, snap *Snapshot, passphrase string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, snap, passphrase); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}
	return atomicWrite(path, buf.Bytes())
}

// ReadFile decrypts the backup at path.
func ReadFile(path, passphrase string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening backup: %w", err)
	}
	defer f.Close()
	return Decode(f, passphrase)
}

// atomicWrite writes data to path atomically: write temp file → fsync → rename.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".backup-*.tmp")
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
		return fmt.Errorf("writing backup data: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("fsyncing backup data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("committing backup file: %w", err)
	}

	success = true
	return nil
}
