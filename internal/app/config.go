package app

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string // config directory, e.g. $HOME/.seedvault
	Passphrase string // protects the device store at rest
}
