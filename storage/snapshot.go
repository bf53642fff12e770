package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// SnapshotVersion is bumped whenever the body layout changes incompatibly
const SnapshotVersion = 1

// ErrSnapshotVersion is returned for snapshots written by an incompatible build
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// Header is the first line of a snapshot, readable without decoding the body
type Header struct {
	Version   int       `json:"version"`
	RunID     string    `json:"run_id"`
	SavedAt   time.Time `json:"saved_at"`
	Buildings int       `json:"buildings"`
	Joints    int       `json:"joints"`
}

// Snapshot is a resumable tower
type Snapshot struct {
	Header Header `json:"header"`

	Money        int64   `json:"money"`
	QuakeCount   int     `json:"quake_count"`
	NextInterval float64 `json:"next_interval_s"`

	Buildings []BuildingV1 `json:"buildings"`
	Joints    []JointV1    `json:"joints"`
}

type BuildingV1 struct {
	Pos   [2]float64 `json:"pos"`
	Angle float64    `json:"angle"`
	Size  [2]float64 `json:"size"`
	// Chimney is the body-frame chimney offset; nil for the default roof
	Chimney *[2]float64 `json:"chimney,omitempty"`
}

// JointV1 references buildings by their index in Snapshot.Buildings
type JointV1 struct {
	A          int        `json:"a"`
	B          int        `json:"b"`
	AnchorA    [2]float64 `json:"anchor_a"`
	AnchorB    [2]float64 `json:"anchor_b"`
	RestLength float64    `json:"rest_length"`
}

// SaveSnapshot writes a zstd-compressed header line followed by the JSON body
// The file is replaced atomically
func SaveSnapshot(path string, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create snapshot dir")
	}

	snap.Header.Version = SnapshotVersion
	snap.Header.Buildings = len(snap.Buildings)
	snap.Header.Joints = len(snap.Joints)

	// Each writer gets its own temporary file; the last rename wins
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "open snapshot")
	}
	tmp := f.Name()
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrap(err, "chmod snapshot")
	}

	if err := writeSnapshot(f, snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "close snapshot")
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "replace snapshot")
	}
	return nil
}

func writeSnapshot(f *os.File, snap Snapshot) error {
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return errors.Wrap(err, "zstd writer")
	}
	bw := bufio.NewWriterSize(enc, 64*1024)

	hb, err := json.Marshal(snap.Header)
	if err != nil {
		enc.Close()
		return errors.Wrap(err, "encode header")
	}
	bw.Write(hb)
	bw.WriteByte('\n')

	if err := json.NewEncoder(bw).Encode(&snap); err != nil {
		enc.Close()
		return errors.Wrap(err, "encode snapshot")
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return errors.Wrap(err, "flush snapshot")
	}
	return errors.Wrap(enc.Close(), "finish snapshot")
}

// ReadHeader decodes only the first line of a snapshot
func ReadHeader(path string) (Header, error) {
	var h Header
	err := readSnapshot(path, func(br *bufio.Reader) error {
		line, err := br.ReadBytes('\n')
		if err != nil {
			return errors.Wrap(err, "read header")
		}
		return errors.Wrap(json.Unmarshal(line, &h), "decode header")
	})
	return h, err
}

// LoadSnapshot reads a snapshot written by SaveSnapshot
func LoadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	err := readSnapshot(path, func(br *bufio.Reader) error {
		// Header is repeated in the body
		if _, err := br.ReadBytes('\n'); err != nil {
			return errors.Wrap(err, "read header")
		}
		if err := json.NewDecoder(br).Decode(&snap); err != nil {
			return errors.Wrap(err, "decode snapshot")
		}
		if snap.Header.Version != SnapshotVersion {
			return errors.Wrapf(ErrSnapshotVersion, "version %d", snap.Header.Version)
		}
		return nil
	})
	return snap, err
}

func readSnapshot(path string, fn func(*bufio.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open snapshot")
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return errors.Wrap(err, "zstd reader")
	}
	defer dec.Close()

	return fn(bufio.NewReaderSize(dec, 64*1024))
}
