package store

import (
	"context"
	"fmt"
	"io"
	"time"

	"lil-go/pkg/buffers"
	"lil-go/pkg/codec"
	"lil-go/pkg/errs"
	"lil-go/pkg/log"
	"lil-go/pkg/transform"
)

// SnapshotVersion is written into every export.
const SnapshotVersion = 1

// Snapshot is the export format: every buffer's budget and layout image.
type Snapshot struct {
	Version int
	Created time.Time
	Records []Record
}

type Record struct {
	Name   string
	Budget int
	Layout []byte
}

func codecFor(tr transform.Transform) *codec.Codec[Snapshot] {
	return codec.NewCodec[Snapshot](tr)
}

// Export writes a snapshot of the whole store to w through tr and returns the
// number of buffers written.
func (s *Store) Export(ctx context.Context, w io.Writer, tr transform.Transform) (int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, budget, layout FROM buffers ORDER BY name`)
	if err != nil {
		return 0, fmt.Errorf("store: export: %w", err)
	}
	defer rows.Close()

	snap := Snapshot{Version: SnapshotVersion, Created: time.Now().UTC()}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Name, &r.Budget, &r.Layout); err != nil {
			return 0, fmt.Errorf("store: export scan: %w", err)
		}
		snap.Records = append(snap.Records, r)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("store: export: %w", err)
	}

	n, err := codecFor(tr).Write(w, snap)
	if err != nil {
		return 0, err
	}
	log.Info().Int("buffers", len(snap.Records)).Int("bytes", n).Msg("store exported")
	return len(snap.Records), nil
}

// Import reads a snapshot written by Export and stores every record in it,
// replacing buffers of the same name. Every layout is validated before
// anything is written; one bad record rejects the whole snapshot.
func (s *Store) Import(ctx context.Context, r io.Reader, tr transform.Transform) (int, error) {
	snap, err := codecFor(tr).Read(r)
	if err != nil {
		return 0, err
	}
	if snap.Version != SnapshotVersion {
		return 0, errs.Errorf(errs.InvalidFormat, "snapshot version %d, want %d", snap.Version, SnapshotVersion)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range snap.Records {
		key, err := Key(rec.Name)
		if err != nil {
			return 0, err
		}
		b, err := decode(rec.Budget, rec.Layout)
		if err != nil {
			return 0, fmt.Errorf("store: import %q: %w", key, err)
		}
		err = save(ctx, tx, key, b)
		buffers.Put(b)
		if err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	log.Info().Int("buffers", len(snap.Records)).Time("created", snap.Created).Msg("store imported")
	return len(snap.Records), nil
}
