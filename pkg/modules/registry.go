package modules

import "github.com/arthur-debert/rigup/pkg/engine"

// All returns the provisioning modules in their fixed execution order.
// The order is a hard contract: later modules assume earlier ones ran.
func All() []engine.Module {
	return []engine.Module{
		&Homebrew{},
		&OhMyZsh{},
		&Theme{},
		&Tmux{},
		&Fonts{},
	}
}

// Names returns the module names in execution order.
func Names() []string {
	mods := All()
	names := make([]string, 0, len(mods))
	for _, m := range mods {
		names = append(names, m.Name())
	}
	return names
}
