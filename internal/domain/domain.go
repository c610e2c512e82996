package domain

import (
	"context"
	"io"
)

// --- Model types ---

// Pair is two distinct image identifiers in the order they were drawn.
// Display order is meaningful (left/right slot on the comparison page);
// equality is decided on the canonical sorted form, see Key.
type Pair struct {
	Left  string
	Right string
}

// Key returns the canonical representation used for membership checks:
// the two identifiers sorted ascending.
func (p Pair) Key() PairKey {
	if p.Left <= p.Right {
		return PairKey{p.Left, p.Right}
	}
	return PairKey{p.Right, p.Left}
}

// PairKey is the canonical (sorted) form of a Pair. Comparable, so it can be
// used directly as a set member.
type PairKey [2]string

// ChoiceRecord is one rating decision: the image the rater picked and the one
// they rejected. Records are append-only.
type ChoiceRecord struct {
	Selected string
	Other    string
}

// Comparison is the outcome of a "next comparison" request. Either Pair is
// set, or Finished is true and ArchivePath names the archive produced by the
// reset that just happened.
type Comparison struct {
	Pair        Pair
	Finished    bool
	ArchivePath string
}

// --- Interfaces ---

// AssetStore abstracts the image pool on disk. List re-enumerates the
// directory on every call so additions and removals are reflected live;
// the returned order is whatever the platform yields, deliberately unsorted.
type AssetStore interface {
	List() ([]string, error)
	Open(name string) (io.ReadCloser, error)
	Store(name string, r io.Reader) error
	Delete(name string) error
	DeleteAll() error
}

// ChoiceLog abstracts the durable log of rating decisions.
type ChoiceLog interface {
	// Append writes one record and flushes it to storage before returning.
	Append(ctx context.Context, rec ChoiceRecord) error
	// ArchiveAndReset snapshots the active log (header included) into a new
	// timestamped archive, truncates the active log back to header-only, and
	// returns the archive path. Legal on a header-only log.
	ArchiveAndReset(ctx context.Context) (string, error)
	// LatestArchive returns the path of the most recent archive, or
	// ErrNoArchive if none exists yet.
	LatestArchive() (string, error)
}

// AppService is the application layer contract; handlers route all
// operations through here.
type AppService interface {
	// NextComparison draws the next unseen pair, or archives and resets the
	// session when every pair has been shown.
	NextComparison(ctx context.Context) (Comparison, error)
	// RecordChoice appends one rating decision. Identifiers are not checked
	// against the pair actually issued; see the package doc for the known gap.
	RecordChoice(ctx context.Context, selected, other string) error
	// ForceFinish archives and resets the session regardless of exhaustion.
	ForceFinish(ctx context.Context) (string, error)
	LatestArchive() (string, error)
	OpenAsset(name string) (io.ReadCloser, error)
	StoreAsset(name string, r io.Reader) error
	DeleteAllAssets(ctx context.Context) error
}
