//go:build !linux

package mpris

// Adapter does nothing outside Linux, where there is no session bus to
// publish on.
type Adapter struct{}

func New(Store) (*Adapter, error) { return &Adapter{}, nil }

func (*Adapter) Close() error { return nil }
