package ui

// Config contains window and input related settings.
type Config struct {
	Title        string // window title
	Scale        int    // integer upscaling factor
	ROMsDir      string // directory to browse for ROMs
	StepsPerTick int    // instructions executed per Update while running
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "gbemu"
	}
	if c.Scale <= 0 {
		c.Scale = 2
	}
	if c.ROMsDir == "" {
		c.ROMsDir = "roms"
	}
	if c.StepsPerTick <= 0 {
		c.StepsPerTick = 1000
	}
}
