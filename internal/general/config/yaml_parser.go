package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parseYAML parses the specific two-level mapping used by config.yaml.
func parseYAML(r io.Reader, cfg *Config) error {
	type section int
	const (
		none section = iota
		db
		rm
		sv
		jw
		co
	)

	scanner := bufio.NewScanner(r)
	var cur section

	lineNo := 0
	seenTop := map[section]bool{}

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()

		// strip comments
		if i := strings.IndexByte(raw, '#'); i >= 0 {
			raw = raw[:i]
		}

		line := strings.TrimRight(raw, " \t\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		// top-level section? (no leading spaces)
		if line[0] != ' ' && line[0] != '\t' {
			var sec section
			switch strings.TrimSpace(line) {
			case "database:":
				sec = db
			case "rabbitmq:":
				sec = rm
			case "services:":
				sec = sv
			case "jwt:":
				sec = jw
			case "cors:":
				sec = co
			default:
				return fmt.Errorf("line %d: unknown top-level key %q", lineNo, strings.TrimSuffix(strings.TrimSpace(line), ":"))
			}
			if seenTop[sec] {
				return fmt.Errorf("line %d: duplicate %q section", lineNo, strings.TrimSuffix(strings.TrimSpace(line), ":"))
			}
			seenTop[sec] = true
			cur = sec
			continue
		}

		// expect indented "key: value"
		if cur == none {
			return fmt.Errorf("line %d: key without a section", lineNo)
		}
		trim := strings.TrimSpace(line)
		colon := strings.IndexByte(trim, ':')
		if colon <= 0 {
			return fmt.Errorf("line %d: expected 'key: value'", lineNo)
		}
		key := strings.TrimSpace(trim[:colon])
		val := strings.TrimSpace(trim[colon+1:])

		switch cur {
		case db:
			switch key {
			case "host":
				cfg.Database.Host = resolveScalar(val)
			case "port":
				p, err := parsePort(val)
				if err != nil {
					return fmt.Errorf("line %d: database.port must be int: %v", lineNo, err)
				}
				cfg.Database.Port = p
			case "user":
				cfg.Database.User = resolveScalar(val)
			case "password":
				cfg.Database.Password = resolveScalar(val)
			case "database":
				cfg.Database.Name = resolveScalar(val)
			default:
				return fmt.Errorf("line %d: unknown key in database: %q", lineNo, key)
			}
		case rm:
			switch key {
			case "host":
				cfg.RabbitMQ.Host = resolveScalar(val)
			case "port":
				p, err := parsePort(val)
				if err != nil {
					return fmt.Errorf("line %d: rabbitmq.port must be int: %v", lineNo, err)
				}
				cfg.RabbitMQ.Port = p
			case "user":
				cfg.RabbitMQ.User = resolveScalar(val)
			case "password":
				cfg.RabbitMQ.Password = resolveScalar(val)
			default:
				return fmt.Errorf("line %d: unknown key in rabbitmq: %q", lineNo, key)
			}
		case sv:
			p, err := parsePort(val)
			if err != nil {
				return fmt.Errorf("line %d: services.%s must be int: %v", lineNo, key, err)
			}
			switch key {
			case "passenger_service":
				cfg.Services.PassengerServicePort = p
			case "driver_service":
				cfg.Services.DriverServicePort = p
			case "admin_service":
				cfg.Services.AdminServicePort = p
			default:
				return fmt.Errorf("line %d: unknown key in services: %q", lineNo, key)
			}
		case jw:
			switch key {
			case "secret_key":
				cfg.JWT.SecretKey = resolveScalar(val)
			default:
				return fmt.Errorf("line %d: unknown key in jwt: %q", lineNo, key)
			}
		case co:
			switch key {
			case "allowed_origins":
				// comma-separated list
				for _, origin := range strings.Split(resolveScalar(val), ",") {
					if o := strings.TrimSpace(origin); o != "" {
						cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, o)
					}
				}
			default:
				return fmt.Errorf("line %d: unknown key in cors: %q", lineNo, key)
			}
		}
	}

	return scanner.Err()
}

func parsePort(val string) (int, error) {
	return strconv.Atoi(resolveScalar(val))
}

// resolveScalar trims whitespace and removes surrounding quotes from
// YAML-like scalars so values such as jwt.secret_key are not stored with
// extra quotes.
func resolveScalar(s string) string {
	s = strings.TrimSpace(s)

	n := len(s)
	if n >= 2 {
		if (s[0] == '"' && s[n-1] == '"') || (s[0] == '\'' && s[n-1] == '\'') {
			if unq, err := strconv.Unquote(s); err == nil {
				return unq
			}
			return s[1 : n-1]
		}
	}

	return s
}
