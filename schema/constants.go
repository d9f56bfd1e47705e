package schema

// Custom string types for type safety.
type (
	// HalsteadKey represents keys used in the Halstead totals mapping.
	HalsteadKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatasetFormat represents the on-disk format of the dataset file.
	DatasetFormat string

	// SnapshotSide distinguishes the codebase before the first correlated
	// commit from the codebase after the last one.
	SnapshotSide string

	// CacheBackend represents the database backend for the stores.
	CacheBackend string
)

// Halstead keys used in aggregation and in the dataset records.
const (
	HalsteadLength     HalsteadKey = "halstead_length"
	HalsteadVocabulary HalsteadKey = "halstead_vocabulary"
	HalsteadVolume     HalsteadKey = "halstead_volume"
	HalsteadDifficulty HalsteadKey = "halstead_difficulty"
	HalsteadEffort     HalsteadKey = "halstead_effort"
)

// AllHalsteadKeys returns the keys in record order.
var AllHalsteadKeys = []HalsteadKey{
	HalsteadLength,
	HalsteadVocabulary,
	HalsteadVolume,
	HalsteadDifficulty,
	HalsteadEffort,
}

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All dataset formats supported.
const (
	JSONLFormat   DatasetFormat = "jsonl" // default
	ParquetFormat DatasetFormat = "parquet"
)

// Both snapshot sides.
const (
	BeforeSide SnapshotSide = "before"
	AfterSide  SnapshotSide = "after"
)

// All store backends supported.
const (
	SQLiteBackend     CacheBackend = "sqlite" // default
	MySQLBackend      CacheBackend = "mysql"
	PostgreSQLBackend CacheBackend = "postgresql"
	NoneBackend       CacheBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatasetFormats lists all valid dataset formats.
var ValidDatasetFormats = map[DatasetFormat]struct{}{
	JSONLFormat:   {},
	ParquetFormat: {},
}

// ValidCacheBackends lists all valid store backends.
var ValidCacheBackends = map[CacheBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidBeforeExtensions lists the source extensions collected into the
// snapshot taken before an issue's first commit.
var ValidBeforeExtensions = map[string]struct{}{
	".py":   {},
	".js":   {},
	".java": {},
	".cpp":  {},
	".c":    {},
	".rb":   {},
	".go":   {},
	".ts":   {},
	".dart": {},
	".html": {},
}

// ValidAfterExtensions lists the source extensions collected into the
// snapshot taken after an issue's last commit. Markup and Dart files are
// excluded on this side; the asymmetry is part of the dataset contract.
var ValidAfterExtensions = map[string]struct{}{
	".py":   {},
	".js":   {},
	".java": {},
	".cpp":  {},
	".c":    {},
	".rb":   {},
	".go":   {},
	".ts":   {},
}

// SnapshotExtensions returns the extension allow-list for a snapshot side.
func SnapshotExtensions(side SnapshotSide) map[string]struct{} {
	switch side {
	case AfterSide:
		return ValidAfterExtensions
	default:
		return ValidBeforeExtensions
	}
}
