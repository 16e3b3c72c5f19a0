package signal

// Signal mirrors the state of the game somewhere outside the console.
type Signal interface {
	Dispose() error
	Ensure(Context) error
	Update() error

	GetType() Type
}
