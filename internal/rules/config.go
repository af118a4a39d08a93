package rules

import "fmt"

// VerbRuleConfig represents one verb's rules from YAML config.
type VerbRuleConfig struct {
	RejectFlags []string `yaml:"reject_flags"`
}

// CompileVerbRule turns a single verb's config into CheckFuncs.
func CompileVerbRule(verb string, cfg VerbRuleConfig) []CheckFunc {
	var fns []CheckFunc

	if len(cfg.RejectFlags) > 0 {
		flags := cfg.RejectFlags
		name := verb
		fns = append(fns, func(v string, args []string) error {
			if v != name {
				return nil
			}
			if hasAnyFlag(args, flags...) {
				return fmt.Errorf("%s: rejected flag (config rule)", name)
			}
			return nil
		})
	}

	return fns
}
