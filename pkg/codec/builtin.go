package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Built-in type keys.
const (
	TypeString   = "string"
	TypeInt      = "int"
	TypeFloat    = "float"
	TypeBool     = "bool"
	TypeDateTime = "datetime"
	TypeDate     = "date"
	TypeTime     = "time"
	TypeDuration = "duration"
)

const (
	layoutDateTime = "2006-01-02T15:04:05"
	layoutDate     = "2006-01-02"
	layoutTime     = "15:04:05"
)

// Canonical bool tokens.
const (
	tokenTrue  = "true"
	tokenFalse = "false"
)

var boolTokens = map[string]bool{
	"true": true, "yes": true, "t": true, "y": true, "1": true,
	"false": false, "no": false, "f": false, "n": false, "0": false,
}

func registerBuiltins(r *Registry) {
	r.codecs[TypeString] = Codec{Decode: decodeString, Encode: encodeString}
	r.codecs[TypeInt] = Codec{Decode: decodeInt, Encode: encodeInt}
	r.codecs[TypeFloat] = Codec{Decode: decodeFloat, Encode: encodeFloat}
	r.codecs[TypeBool] = Codec{Decode: decodeBool, Encode: encodeBool}
	r.codecs[TypeDateTime] = timeCodec(layoutDateTime)
	r.codecs[TypeDate] = timeCodec(layoutDate)
	r.codecs[TypeTime] = timeCodec(layoutTime)
	r.codecs[TypeDuration] = Codec{Decode: decodeDuration, Encode: encodeDuration}
}

func decodeString(token string) (any, error) {
	return token, nil
}

func encodeString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}
	return s, nil
}

func decodeInt(token string) (any, error) {
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("not an integer: %q", token)
	}
	return n, nil
}

func encodeInt(v any) (string, error) {
	n, ok := v.(int)
	if !ok {
		return "", fmt.Errorf("expected int, got %T", v)
	}
	return strconv.Itoa(n), nil
}

func decodeFloat(token string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", token)
	}
	return f, nil
}

func encodeFloat(v any) (string, error) {
	f, ok := v.(float64)
	if !ok {
		return "", fmt.Errorf("expected float64, got %T", v)
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

func decodeBool(token string) (any, error) {
	b, exists := boolTokens[strings.ToLower(strings.TrimSpace(token))]
	if !exists {
		return nil, fmt.Errorf("not a boolean: %q", token)
	}
	return b, nil
}

func encodeBool(v any) (string, error) {
	b, ok := v.(bool)
	if !ok {
		return "", fmt.Errorf("expected bool, got %T", v)
	}
	if b {
		return tokenTrue, nil
	}
	return tokenFalse, nil
}

func timeCodec(layout string) Codec {
	return Codec{
		Decode: func(token string) (any, error) {
			t, err := time.Parse(layout, strings.TrimSpace(token))
			if err != nil {
				return nil, fmt.Errorf("not a %q value: %q", layout, token)
			}
			return t, nil
		},
		Encode: func(v any) (string, error) {
			t, ok := v.(time.Time)
			if !ok {
				return "", fmt.Errorf("expected time.Time, got %T", v)
			}
			return t.Format(layout), nil
		},
	}
}

// decodeDuration accepts the clock form H:MM:SS (fractional seconds allowed)
// and falls back to Go duration syntax such as 90m or 1h30m.
func decodeDuration(token string) (any, error) {
	token = strings.TrimSpace(token)

	if strings.Count(token, ":") == 2 {
		parts := strings.SplitN(token, ":", 3)
		h, errH := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		s, errS := strconv.ParseFloat(parts[2], 64)
		if errH != nil || errM != nil || errS != nil || h < 0 || m < 0 || s < 0 {
			return nil, fmt.Errorf("not a duration: %q", token)
		}
		d := time.Duration(h)*time.Hour +
			time.Duration(m)*time.Minute +
			time.Duration(s*float64(time.Second))
		return d, nil
	}

	d, err := time.ParseDuration(token)
	if err != nil {
		return nil, fmt.Errorf("not a duration: %q", token)
	}
	return d, nil
}

// encodeDuration renders the canonical zero-padded clock form.
func encodeDuration(v any) (string, error) {
	d, ok := v.(time.Duration)
	if !ok {
		return "", fmt.Errorf("expected time.Duration, got %T", v)
	}
	if d < 0 {
		return "", fmt.Errorf("negative duration: %v", d)
	}

	h := int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	sec := d.Seconds()

	if sec == math.Trunc(sec) {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, int(sec)), nil
	}

	s := strconv.FormatFloat(sec, 'f', -1, 64)
	if sec < 10 {
		s = "0" + s
	}
	return fmt.Sprintf("%02d:%02d:%s", h, m, s), nil
}
