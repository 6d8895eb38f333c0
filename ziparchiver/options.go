package ziparchiver

type StoreOption func(o *storeOptions)

type storeOptions struct {
	dryRun bool
}

// WithDryRun writes to the null device instead of the backup volume.
func WithDryRun(dryRun bool) StoreOption {
	return func(o *storeOptions) {
		o.dryRun = dryRun
	}
}
