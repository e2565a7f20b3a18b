package domain

import (
	"fmt"
	"net/mail"
	"net/netip"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/zerr"
)

// ParamType is one of the closed set of surface types a declared task
// parameter may carry. There is no registry: every tag below is handled
// directly by CoerceArgument.
type ParamType string

const (
	ParamString   ParamType = "str"
	ParamInt      ParamType = "int"
	ParamFloat    ParamType = "float"
	ParamBool     ParamType = "bool"
	ParamPath     ParamType = "path"
	ParamDatetime ParamType = "datetime"
	ParamURL      ParamType = "url"
	ParamHostname ParamType = "hostname"
	ParamEmail    ParamType = "email"
	ParamIP       ParamType = "ip"
	ParamIPv4     ParamType = "ipv4"
	ParamIPv6     ParamType = "ipv6"
)

// validTypes is consulted by the recipe loader while parsing a task's
// declared parameter list.
var validTypes = map[ParamType]bool{
	ParamString: true, ParamInt: true, ParamFloat: true, ParamBool: true,
	ParamPath: true, ParamDatetime: true, ParamURL: true, ParamHostname: true,
	ParamEmail: true, ParamIP: true, ParamIPv4: true, ParamIPv6: true,
}

// IsValidParamType reports whether t is one of the supported type tags.
func IsValidParamType(t ParamType) bool {
	return validTypes[t]
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// dateOnly is the bare-date fallback accepted alongside RFC3339 for the
// datetime type.
const dateOnly = "2006-01-02"

// parseBool accepts the wider bool vocabulary spec §6 requires
// (true|false|1|0|yes|no, case-insensitive) on top of whatever
// strconv.ParseBool already recognises.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	default:
		return strconv.ParseBool(strings.ToLower(raw))
	}
}

// CoerceArgument converts the raw string value of a command-line argument
// into its canonical string form for the declared parameter type,
// validating format along the way. The returned string is what gets
// substituted into the command template and what feeds ArgsFingerprint.
func CoerceArgument(p Parameter, raw string) (string, error) {
	switch p.Type {
	case "", ParamString:
		return raw, nil
	case ParamPath:
		abs, err := filepath.Abs(raw)
		if err != nil {
			return "", zerr.Wrap(ErrArgCoercion, err, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		return abs, nil
	case ParamInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return "", zerr.Wrap(ErrArgCoercion, err, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		return strconv.FormatInt(n, 10), nil
	case ParamFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", zerr.Wrap(ErrArgCoercion, err, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case ParamBool:
		b, err := parseBool(raw)
		if err != nil {
			return "", zerr.Wrap(ErrArgCoercion, err, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		return strconv.FormatBool(b), nil
	case ParamDatetime:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.Format(time.RFC3339), nil
		}
		t, err := time.Parse(dateOnly, raw)
		if err != nil {
			return "", zerr.Wrap(ErrArgCoercion, err, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		return t.Format(time.RFC3339), nil
	case ParamURL:
		if err := validate.Var(raw, "url"); err != nil {
			return "", zerr.Wrap(ErrArgCoercion, err, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "", zerr.With(ErrArgCoercion, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		return u.String(), nil
	case ParamHostname:
		if err := validate.Var(raw, "fqdn"); err != nil {
			return "", zerr.Wrap(ErrArgCoercion, err, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		return strings.ToLower(raw), nil
	case ParamEmail:
		if err := validate.Var(raw, "email"); err != nil {
			return "", zerr.Wrap(ErrArgCoercion, err, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		addr, err := mail.ParseAddress(raw)
		if err != nil {
			return "", zerr.Wrap(ErrArgCoercion, err, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		return addr.Address, nil
	case ParamIP:
		if err := validate.Var(raw, "ip"); err != nil {
			return "", zerr.Wrap(ErrArgCoercion, err, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return "", zerr.Wrap(ErrArgCoercion, err, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		return addr.String(), nil
	case ParamIPv4:
		if err := validate.Var(raw, "ip4_addr"); err != nil {
			return "", zerr.Wrap(ErrArgCoercion, err, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil || !addr.Is4() {
			return "", zerr.With(ErrArgCoercion, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		return addr.String(), nil
	case ParamIPv6:
		if err := validate.Var(raw, "ip6_addr"); err != nil {
			return "", zerr.Wrap(ErrArgCoercion, err, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil || !addr.Is6() {
			return "", zerr.With(ErrArgCoercion, "parameter", p.Name, "type", string(p.Type), "value", raw)
		}
		return addr.String(), nil
	default:
		return "", zerr.With(ErrUnknownParamType, "type", string(p.Type))
	}
}

// ResolvedArg is a parameter paired with its coerced value, in parameter
// declaration order, ready for both command substitution and fingerprinting.
type ResolvedArg struct {
	Name  string
	Type  ParamType
	Value string
}

// String renders an arg as "name=value" for command substitution
// bookkeeping and log output.
func (a ResolvedArg) String() string {
	return fmt.Sprintf("%s=%s", a.Name, a.Value)
}
