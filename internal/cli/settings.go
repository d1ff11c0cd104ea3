package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"github.com/ppiankov/aidtrace/internal/model"
)

const configDirName = ".aidtrace"

// Environment overrides. Durations are given in seconds.
var envBindings = []struct {
	key string
	env string
}{
	{"env.req_timeout", "AID_REQ_TIMEOUT"},
	{"env.user_agent", "AID_USER_AGENT"},
	{"env.fx_timeout", "AID_GOOGLE_TIMEOUT"},
	{"env.scrape_limit", "AID_SCRAPE_LIMIT"},
	{"env.threads", "AID_THREADS"},
	{"env.total_budget", "AID_TOTAL_BUDGET_SEC"},
	{"env.skip_pdf", "AID_SKIP_PDF"},
	{"env.cache_dir", "AID_CACHE_DIR"},
	{"env.log_level", "AID_LOG_LEVEL"},
	{"env.openai_api_key", "OPENAI_API_KEY"},
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("AID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, b := range envBindings {
		_ = v.BindEnv(b.key, b.env)
	}
}

// LoadConfig layers the config file and environment over the defaults
func LoadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, eris.Wrap(err, "decode config")
	}
	if err := applyEnv(v, cfg); err != nil {
		return nil, err
	}
	if v.GetBool("verbose") {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func applyEnv(v *viper.Viper, cfg *model.Config) error {
	var err error
	set := func(key string, apply func(string) error) {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" || err != nil {
			return
		}
		if e := apply(s); e != nil {
			err = eris.Wrapf(e, "invalid %s", key)
		}
	}

	set("env.req_timeout", durationInto(&cfg.HTTP.Timeout))
	set("env.fx_timeout", durationInto(&cfg.FX.Timeout))
	set("env.total_budget", durationInto(&cfg.Enrich.Budget))
	set("env.scrape_limit", intInto(&cfg.Enrich.MaxRecords))
	set("env.threads", intInto(&cfg.Enrich.Workers))
	set("env.skip_pdf", func(s string) error {
		b, e := strconv.ParseBool(s)
		cfg.Acquire.SkipPDF = b
		return e
	})
	set("env.user_agent", func(s string) error { cfg.HTTP.UserAgent = s; return nil })
	set("env.cache_dir", func(s string) error { cfg.Cache.Dir = s; return nil })
	set("env.log_level", func(s string) error { cfg.Log.Level = s; return nil })
	set("env.openai_api_key", func(s string) error { cfg.Translate.APIKey = s; return nil })
	return err
}

// ParseSeconds reads "7", "7.5" or a Go duration such as "7s"
func ParseSeconds(s string) (time.Duration, error) {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 {
			return 0, eris.Errorf("negative duration %q", s)
		}
		return time.Duration(f * float64(time.Second)), nil
	}
	return time.ParseDuration(s)
}

func durationInto(d *time.Duration) func(string) error {
	return func(s string) error {
		v, err := ParseSeconds(s)
		if err != nil {
			return err
		}
		*d = v
		return nil
	}
}

func intInto(n *int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*n = v
		return nil
	}
}
