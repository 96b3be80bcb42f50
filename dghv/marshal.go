package dghv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andronat/libshe/internal/bigint"
)

// MarshalText encodes sk in the canonical form p/etha/s/l/ (spec.md §6):
// p in base 62 (bigint.Int.Text), etha, s and l in decimal, and every
// field terminated by '/'. The small fields are not base-62 encoded.
// It mirrors lattigo's MarshalBinary/UnmarshalBinary convention but for
// the textual wire format this scheme specifies.
func (sk *SecretKey) MarshalText() ([]byte, error) {
	if sk == nil {
		return nil, fmt.Errorf("cannot MarshalText: secret key is nil: %w", ErrParameterInvalid)
	}
	s := fmt.Sprintf("%s/%s/%s/%s/",
		sk.P.Text(),
		strconv.Itoa(sk.Etha),
		strconv.Itoa(sk.S),
		strconv.Itoa(sk.L),
	)
	return []byte(s), nil
}

// UnmarshalText decodes a secret key previously produced by
// MarshalText.
func (sk *SecretKey) UnmarshalText(data []byte) error {
	fields, err := splitFields(string(data), 4)
	if err != nil {
		return fmt.Errorf("cannot UnmarshalText secret key: %w", err)
	}

	p, err := bigint.Parse(fields[0])
	if err != nil {
		return fmt.Errorf("cannot UnmarshalText secret key: %w", err)
	}
	etha, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("cannot UnmarshalText secret key: invalid etha: %w", err)
	}
	s, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("cannot UnmarshalText secret key: invalid s: %w", err)
	}
	l, err := strconv.Atoi(fields[3])
	if err != nil {
		return fmt.Errorf("cannot UnmarshalText secret key: invalid l: %w", err)
	}

	sk.P = p
	sk.Etha = etha
	sk.S = s
	sk.L = l
	return nil
}

// MarshalText encodes pk in the canonical form x/gamma/s/l/: x in base
// 62, gamma, s and l in decimal, every field terminated by '/'.
func (pk *PublicKey) MarshalText() ([]byte, error) {
	if pk == nil {
		return nil, fmt.Errorf("cannot MarshalText: public key is nil: %w", ErrParameterInvalid)
	}
	s := fmt.Sprintf("%s/%s/%s/%s/",
		pk.X.Text(),
		strconv.Itoa(pk.Gamma),
		strconv.Itoa(pk.S),
		strconv.Itoa(pk.L),
	)
	return []byte(s), nil
}

// UnmarshalText decodes a public key previously produced by
// MarshalText. The wire format (spec.md §6) carries only x, gamma, s, l;
// U is never part of a PublicKey's state (see the PublicKey doc comment).
func (pk *PublicKey) UnmarshalText(data []byte) error {
	fields, err := splitFields(string(data), 4)
	if err != nil {
		return fmt.Errorf("cannot UnmarshalText public key: %w", err)
	}

	x, err := bigint.Parse(fields[0])
	if err != nil {
		return fmt.Errorf("cannot UnmarshalText public key: %w", err)
	}
	gamma, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("cannot UnmarshalText public key: invalid gamma: %w", err)
	}
	s, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("cannot UnmarshalText public key: invalid s: %w", err)
	}
	l, err := strconv.Atoi(fields[3])
	if err != nil {
		return fmt.Errorf("cannot UnmarshalText public key: invalid l: %w", err)
	}

	pk.X = x
	pk.Gamma = gamma
	pk.S = s
	pk.L = l
	return nil
}

// MarshalText encodes ct as (element/)*, every element terminated by a
// single '/'. An empty ciphertext marshals to the empty string (spec.md
// §6).
func (ct *Ciphertext) MarshalText() ([]byte, error) {
	if ct == nil {
		return nil, fmt.Errorf("cannot MarshalText: ciphertext is nil: %w", ErrParameterInvalid)
	}

	var b strings.Builder
	for _, e := range ct.Elements {
		b.WriteString(e.Text())
		b.WriteByte('/')
	}
	return []byte(b.String()), nil
}

// UnmarshalText decodes a ciphertext previously produced by
// MarshalText.
func (ct *Ciphertext) UnmarshalText(data []byte) error {
	s := string(data)
	if s == "" {
		ct.Elements = nil
		return nil
	}
	if !strings.HasSuffix(s, "/") {
		return fmt.Errorf("cannot UnmarshalText ciphertext: missing trailing separator")
	}

	parts := strings.Split(strings.TrimSuffix(s, "/"), "/")
	elements := make([]bigint.Int, len(parts))
	for i, p := range parts {
		v, err := bigint.Parse(p)
		if err != nil {
			return fmt.Errorf("cannot UnmarshalText ciphertext: element %d: %w", i, err)
		}
		elements[i] = v
	}
	ct.Elements = elements
	return nil
}

// splitFields splits a slash-terminated, slash-separated canonical
// record into exactly n fields, erroring on any other shape.
func splitFields(s string, n int) ([]string, error) {
	if !strings.HasSuffix(s, "/") {
		return nil, fmt.Errorf("missing trailing separator")
	}
	trimmed := strings.TrimSuffix(s, "/")
	fields := strings.Split(trimmed, "/")
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d fields, got %d", n, len(fields))
	}
	return fields, nil
}
