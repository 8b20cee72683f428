package entity

// LifecycleRule is an object expiration rule configured on a bucket.
type LifecycleRule struct {
	ID             string
	Prefix         string
	ExpirationDays int
	Enabled        bool

	// Source holds the store-native rule the entry was read from, so rules
	// owned by someone else are written back untouched.
	Source interface{}
}

// LifecycleAction describes what a reconciliation did to the bucket rules.
type LifecycleAction string

const (
	LifecycleUnchanged LifecycleAction = "unchanged"
	LifecycleUpdated   LifecycleAction = "updated"
	LifecycleCreated   LifecycleAction = "created"
)
