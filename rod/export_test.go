package rod

// SnapshotFromValue exposes snapshotFromValue to tests.
var SnapshotFromValue = snapshotFromValue

// IsBlankURL exposes isBlankURL to tests.
var IsBlankURL = isBlankURL
