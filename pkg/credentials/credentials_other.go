//go:build !windows

package credentials

// ReadFromStore does nothing on this platform. Callers fall back to the
// values of the configuration file.
func (this *Credentials) ReadFromStore() (supported bool, err error) {
	return false, nil
}

// WriteToStore does nothing on this platform. With supported=false callers
// are expected to persist the values in the configuration file themselves.
func (this *Credentials) WriteToStore() (supported bool, err error) {
	return false, nil
}
