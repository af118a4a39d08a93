package builtin

import "github.com/marcelocantos/fsh/internal/cap"

// RegisterAll adds all built-in verbs to the registry.
func RegisterAll(r *cap.Registry) {
	r.Register(&Cat{})
	r.Register(&Cd{})
	r.Register(&Ls{})
	r.Register(&Mkdir{})
	r.Register(&Mv{})
	r.Register(&Pwd{})
	r.Register(&Rm{})
	r.Register(&Rmdir{})
	r.Register(&Sort{})
	r.Register(&Touch{})
}
