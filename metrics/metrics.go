package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Label constants.
	// Commonly used labels can be added here, and their documentation will be
	// displayed in the metrics where they are used. Each constant's name
	// should end with `Label`.

	/// Outcome of a directory creation attempt: `created`, `existed`,
	/// `collision`, or `error`.
	MkdirOutcomeLabel = "outcome"

	/// Hash function backing an index checksum: `sha1` or `sha256`.
	HashKindLabel = "hash_kind"
)

const (
	gsNamespace = "gitstate"
)

var (
	IndexWriteCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: gsNamespace,
		Subsystem: "index",
		Name:      "write_count",
		Help:      "Number of index snapshots serialized to disk.",
	}, []string{
		HashKindLabel,
	})

	IndexWrittenBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: gsNamespace,
		Subsystem: "index",
		Name:      "written_bytes",
		Help:      "Total bytes of serialized index data written.",
	})

	IndexWrittenEntries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: gsNamespace,
		Subsystem: "index",
		Name:      "written_entries",
		Help:      "Total index entries serialized.",
	})

	WorktreeMkdirAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: gsNamespace,
		Subsystem: "worktree",
		Name:      "mkdir_attempts",
		Help:      "Directory creation attempts made while materializing leading directories, by outcome.",
	}, []string{
		MkdirOutcomeLabel,
	})

	WorktreeCollisionUnlinks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: gsNamespace,
		Subsystem: "worktree",
		Name:      "collision_unlinks",
		Help:      "Non-directory entries removed because they occupied a path segment that must be a directory.",
	})
)
