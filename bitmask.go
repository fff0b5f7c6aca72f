// Package bitmask packs named boolean flags into fixed-width binary forms.
//
// A Schema maps each flag to a bit position, either by declaration order or
// through explicit, possibly sparse indices, and fixes the encoded width up
// front. The schema then packs flag sets into bytes (8 flags per byte,
// LSB-first) or into per-flag bool arrays, and unpacks them back. Codec
// binds schemas to struct types with bool fields via reflection so plain
// structs can be marshaled directly.
package bitmask

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/rawbytedev/bitmask/internal/bitio"
)

// TagKey is the struct tag carrying a field's explicit bit index.
const TagKey = "bit"

// Sized fixes the bit-array width of a struct type, standing in for a
// struct-level width declaration. Honored for explicitly indexed structs;
// implicitly indexed ones always use their field count.
type Sized interface {
	TotalBits() int
}

// Codec marshals structs with bool fields through a cached per-type schema.
// Safe for concurrent use.
type Codec struct {
	mu   sync.RWMutex
	plan map[reflect.Type]*plan
}

type plan struct {
	schema *Schema
	fields []boundField
}

type boundField struct {
	idx int // struct field index
	bit int
}

// New returns an empty Codec. Plans are built lazily on first use of each
// struct type.
func New() *Codec {
	return &Codec{plan: make(map[reflect.Type]*plan)}
}

// Marshal packs val's bool fields into the byte form. val must be a struct
// or pointer to struct; fields tagged `bit:"N"` use explicit indices,
// untagged structs pack in field order.
func (c *Codec) Marshal(val any) ([]byte, error) {
	v, pl, err := c.value(val)
	if err != nil {
		return nil, err
	}
	out := make([]byte, pl.schema.totalBytes)
	for _, f := range pl.fields {
		if v.Field(f.idx).Bool() {
			bitio.Set(out, f.bit, true)
		}
	}
	return out, nil
}

// Unmarshal fills out's bool fields from the byte form. out must be a
// pointer to struct and data exactly the schema's byte width.
func (c *Codec) Unmarshal(data []byte, out any) error {
	v, pl, err := c.target(out)
	if err != nil {
		return err
	}
	if len(data) != pl.schema.totalBytes {
		return fmt.Errorf("got %d bytes, %s packs to %d: %w",
			len(data), v.Type(), pl.schema.totalBytes, ErrSizeMismatch)
	}
	for _, f := range pl.fields {
		v.Field(f.idx).SetBool(bitio.Get(data, f.bit))
	}
	return nil
}

// MarshalBits packs val's bool fields into the bit-array form.
func (c *Codec) MarshalBits(val any) ([]bool, error) {
	v, pl, err := c.value(val)
	if err != nil {
		return nil, err
	}
	out := make([]bool, pl.schema.totalBits)
	for _, f := range pl.fields {
		out[f.bit] = v.Field(f.idx).Bool()
	}
	return out, nil
}

// UnmarshalBits fills out's bool fields from the bit-array form.
func (c *Codec) UnmarshalBits(bits []bool, out any) error {
	v, pl, err := c.target(out)
	if err != nil {
		return err
	}
	if len(bits) != pl.schema.totalBits {
		return fmt.Errorf("got %d slots, %s packs to %d: %w",
			len(bits), v.Type(), pl.schema.totalBits, ErrSizeMismatch)
	}
	for _, f := range pl.fields {
		v.Field(f.idx).SetBool(bits[f.bit])
	}
	return nil
}

// SchemaOf returns the resolved schema for val's struct type.
func (c *Codec) SchemaOf(val any) (*Schema, error) {
	_, pl, err := c.value(val)
	if err != nil {
		return nil, err
	}
	return pl.schema, nil
}

func (c *Codec) value(val any) (reflect.Value, *plan, error) {
	v := reflect.ValueOf(val)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, nil, ErrNotStruct
	}
	pl, err := c.getPlan(v.Type())
	return v, pl, err
}

func (c *Codec) target(out any) (reflect.Value, *plan, error) {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, nil, ErrNotStructPtr
	}
	v = v.Elem()
	pl, err := c.getPlan(v.Type())
	return v, pl, err
}

func (c *Codec) getPlan(t reflect.Type) (*plan, error) {
	c.mu.RLock()
	if pl, ok := c.plan[t]; ok {
		c.mu.RUnlock()
		return pl, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check
	if pl, ok := c.plan[t]; ok {
		return pl, nil
	}

	pl, err := buildPlan(t)
	if err != nil {
		return nil, err
	}
	c.plan[t] = pl
	return pl, nil
}

// sizedWidth resolves the Sized override from the type itself, so the plan
// is the same no matter whether a value or a pointer reaches the codec
// first. A pointer receiver on TotalBits still counts.
func sizedWidth(t reflect.Type) (int, bool) {
	if sized, ok := reflect.New(t).Interface().(Sized); ok {
		return sized.TotalBits(), true
	}
	return 0, false
}

func buildPlan(t reflect.Type) (*plan, error) {
	var (
		decls  []Field
		idxs   []int // struct field indices, parallel to decls
		tagged int
	)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue // skip unexported
		}
		if sf.Type.Kind() != reflect.Bool {
			return nil, fmt.Errorf("field %s.%s: %w", t.Name(), sf.Name, ErrNotBool)
		}
		f := Field{Name: sf.Name}
		if tag, ok := sf.Tag.Lookup(TagKey); ok {
			n, err := strconv.Atoi(tag)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s tag %q: %w", t.Name(), sf.Name, tag, ErrBadTag)
			}
			f.Index = n
			f.HasIndex = true
			tagged++
		}
		decls = append(decls, f)
		idxs = append(idxs, i)
	}

	var (
		schema *Schema
		err    error
	)
	if tagged == 0 {
		names := make([]string, len(decls))
		for i, f := range decls {
			names[i] = f.Name
		}
		schema = ResolveImplicit(names)
	} else {
		// One tag makes the whole struct explicit; ResolveExplicit rejects
		// the fields left untagged.
		var opts []ResolveOption
		if n, ok := sizedWidth(t); ok {
			opts = append(opts, WithTotalBits(n))
		}
		schema, err = ResolveExplicit(decls, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name(), err)
		}
	}

	pl := &plan{schema: schema, fields: make([]boundField, len(decls))}
	for i, f := range decls {
		bit, _ := schema.Index(f.Name)
		pl.fields[i] = boundField{idx: idxs[i], bit: bit}
	}
	return pl, nil
}
