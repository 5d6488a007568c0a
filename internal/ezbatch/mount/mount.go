package mount

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/mitchellh/mapstructure"

	ezerrors "github.com/ehsaniara/ezbatch/pkg/errors"
)

// Direction says whether a mount is staged in before the command runs or
// out after it exits.
type Direction string

const (
	Read  Direction = "read"
	Write Direction = "write"
)

// EncryptionMode is the server side encryption requested for uploads.
type EncryptionMode string

const (
	EncryptionNone    EncryptionMode = ""
	EncryptionAES256  EncryptionMode = "AES256"
	EncryptionKMS     EncryptionMode = "aws:kms"
	EncryptionKMSDSSE EncryptionMode = "aws:kms:dsse"
)

func (m EncryptionMode) Valid() bool {
	switch m {
	case EncryptionNone, EncryptionAES256, EncryptionKMS, EncryptionKMSDSSE:
		return true
	}
	return false
}

// UsesKMS reports whether a key id is meaningful for this mode.
func (m EncryptionMode) UsesKMS() bool {
	return m == EncryptionKMS || m == EncryptionKMSDSSE
}

const s3Scheme = "s3://"

// Descriptor is one data staging rule.
type Descriptor struct {
	Source         string         `json:"source" yaml:"source" mapstructure:"source"`
	Destination    string         `json:"destination" yaml:"destination" mapstructure:"destination"`
	Recursive      *bool          `json:"recursive,omitempty" yaml:"recursive,omitempty" mapstructure:"recursive"`
	EncryptionMode EncryptionMode `json:"sse,omitempty" yaml:"sse,omitempty" mapstructure:"sse"`
	KeyID          string         `json:"sse_kms_key_id,omitempty" yaml:"sse_kms_key_id,omitempty" mapstructure:"sse_kms_key_id"`
	// Options holds extra transfer flags passed through verbatim.
	Options string `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options"`
}

// IsRecursive treats an unset flag as false.
func (d Descriptor) IsRecursive() bool {
	return d.Recursive != nil && *d.Recursive
}

// TransferOptions renders the flags handed to the copy tool by the preload
// hook. Flags repeated in Options (--quiet, --recursive) are emitted once.
func (d Descriptor) TransferOptions() string {
	extra, _ := scanOptions(d.Options)

	opts := []string{"--quiet"}
	if d.IsRecursive() || (d.Recursive == nil && extra.recursive) {
		opts = append(opts, "--recursive")
	}
	if d.EncryptionMode != EncryptionNone {
		opts = append(opts, "--sse", string(d.EncryptionMode))
	}
	if d.KeyID != "" {
		opts = append(opts, "--sse-kms-key-id", d.KeyID)
	}
	opts = append(opts, extra.rest...)
	return strings.Join(opts, " ")
}

// Encryption returns the effective encryption mode and key id, taken from
// the typed fields or, when those are empty, from Options.
func (d Descriptor) Encryption() (EncryptionMode, string) {
	extra, _ := scanOptions(d.Options)
	mode, keyID := d.EncryptionMode, d.KeyID
	if mode == EncryptionNone {
		mode = extra.mode
	}
	if keyID == "" {
		keyID = extra.keyID
	}
	return mode, keyID
}

// optionScan is what Options says about the flags that also have typed fields.
type optionScan struct {
	recursive bool
	mode      EncryptionMode
	keyID     string
	sseSet    bool
	keyIDSet  bool
	// rest is Options without --quiet and --recursive.
	rest []string
}

func scanOptions(options string) (optionScan, error) {
	var scan optionScan
	var firstErr error
	fields := strings.Fields(options)
	for i := 0; i < len(fields); i++ {
		flag := fields[i]
		switch flag {
		case "--quiet":
		case "--recursive":
			scan.recursive = true
		case "--sse", "--sse-kms-key-id":
			if i+1 >= len(fields) || strings.HasPrefix(fields[i+1], "-") {
				if firstErr == nil {
					firstErr = fmt.Errorf("%s in options requires a value", flag)
				}
				scan.rest = append(scan.rest, flag)
				continue
			}
			i++
			if flag == "--sse" {
				scan.mode, scan.sseSet = EncryptionMode(fields[i]), true
			} else {
				scan.keyID, scan.keyIDSet = fields[i], true
			}
			scan.rest = append(scan.rest, flag, fields[i])
		default:
			scan.rest = append(scan.rest, flag)
		}
	}
	return scan, firstErr
}

func (d Descriptor) invalid(direction Direction, reason string) error {
	return &ezerrors.InvalidMountError{
		Direction:   string(direction),
		Source:      d.Source,
		Destination: d.Destination,
		Reason:      reason,
	}
}

// CheckShape validates the descriptor without touching storage. Read mounts
// copy from s3 to an absolute local path, write mounts the other way round.
func (d Descriptor) CheckShape(direction Direction) error {
	if d.Source == "" {
		return d.invalid(direction, "source is empty")
	}
	if d.Destination == "" {
		return d.invalid(direction, "destination is empty")
	}

	remote, local := d.Source, d.Destination
	remoteField, localField := "source", "destination"
	switch direction {
	case Read:
	case Write:
		remote, local = d.Destination, d.Source
		remoteField, localField = "destination", "source"
	default:
		return d.invalid(direction, fmt.Sprintf("unknown direction %q", direction))
	}

	if _, _, err := ParseURI(remote); err != nil {
		return d.invalid(direction, fmt.Sprintf("%s must be an s3 uri: %v", remoteField, err))
	}
	if strings.HasPrefix(local, s3Scheme) || !path.IsAbs(local) {
		return d.invalid(direction, fmt.Sprintf("%s must be an absolute local path", localField))
	}

	if err := d.checkOptions(direction); err != nil {
		return err
	}
	mode, keyID := d.Encryption()
	if !mode.Valid() {
		return d.invalid(direction, fmt.Sprintf("unsupported encryption mode %q", mode))
	}
	if keyID != "" && !mode.UsesKMS() {
		return d.invalid(direction, "encryption key id requires aws:kms or aws:kms:dsse")
	}
	return nil
}

// checkOptions rejects Options that contradict or repeat the typed fields.
func (d Descriptor) checkOptions(direction Direction) error {
	extra, err := scanOptions(d.Options)
	if err != nil {
		return d.invalid(direction, err.Error())
	}
	switch {
	case extra.recursive && d.Recursive != nil && !*d.Recursive:
		return d.invalid(direction, "options contain --recursive but recursive is false")
	case extra.sseSet && d.EncryptionMode != EncryptionNone:
		return d.invalid(direction, fmt.Sprintf("options contain --sse %s but sse is %s", extra.mode, d.EncryptionMode))
	case extra.keyIDSet && d.KeyID != "":
		return d.invalid(direction, fmt.Sprintf("options contain --sse-kms-key-id %s but sse_kms_key_id is %s", extra.keyID, d.KeyID))
	}
	return nil
}

// ParseURI splits s3://bucket/key into bucket and key. The key may be empty.
func ParseURI(uri string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, s3Scheme) {
		return "", "", fmt.Errorf("%q does not start with %s", uri, s3Scheme)
	}
	rest := strings.TrimPrefix(uri, s3Scheme)
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%q has no bucket", uri)
	}
	return bucket, key, nil
}

//counterfeiter:generate . StorageChecker

// StorageChecker answers reachability questions about remote storage. A
// false answer is a negative result, an error means the check itself failed.
type StorageChecker interface {
	ObjectExists(ctx context.Context, uri string) (bool, error)
	IsWritable(ctx context.Context, bucket string, mode EncryptionMode, keyID string) (bool, error)
}

// Set is the read and write mounts of one job.
type Set struct {
	Read  []Descriptor `json:"read" yaml:"read" mapstructure:"read"`
	Write []Descriptor `json:"write" yaml:"write" mapstructure:"write"`
}

func (s Set) IsEmpty() bool {
	return len(s.Read) == 0 && len(s.Write) == 0
}

// CheckShape validates every descriptor in declaration order.
func (s Set) CheckShape() error {
	for _, d := range s.Read {
		if err := d.CheckShape(Read); err != nil {
			return err
		}
	}
	for _, d := range s.Write {
		if err := d.CheckShape(Write); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks shapes, then asks storage whether every read source exists
// and every write destination bucket accepts uploads. defaultMode applies to
// write mounts that do not set their own encryption.
func (s Set) Validate(ctx context.Context, checker StorageChecker, defaultMode EncryptionMode, defaultKeyID string) error {
	if err := s.CheckShape(); err != nil {
		return err
	}
	if checker == nil {
		return nil
	}

	for _, d := range s.Read {
		ok, err := checker.ObjectExists(ctx, d.Source)
		if err != nil {
			return ezerrors.WrapStorageError(d.Source, "exists", err)
		}
		if !ok {
			return d.invalid(Read, "source object does not exist")
		}
	}

	for _, d := range s.Write {
		bucket, _, _ := ParseURI(d.Destination)
		mode, keyID := d.Encryption()
		if mode == EncryptionNone {
			mode, keyID = defaultMode, defaultKeyID
		}
		ok, err := checker.IsWritable(ctx, bucket, mode, keyID)
		if err != nil {
			return ezerrors.WrapStorageError(s3Scheme+bucket, "writable", err)
		}
		if !ok {
			return d.invalid(Write, fmt.Sprintf("bucket %s is not writable", bucket))
		}
	}
	return nil
}

type wireMount struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Options     string `json:"options"`
}

type wireSet struct {
	Read  []wireMount `json:"read"`
	Write []wireMount `json:"write"`
}

func toWire(ds []Descriptor) []wireMount {
	out := make([]wireMount, 0, len(ds))
	for _, d := range ds {
		out = append(out, wireMount{Source: d.Source, Destination: d.Destination, Options: d.TransferOptions()})
	}
	return out
}

// WireForm is the compact JSON read by the preload hook. Lists keep their
// declaration order and empty lists are emitted as [].
func (s Set) WireForm() (string, error) {
	b, err := json.Marshal(wireSet{Read: toWire(s.Read), Write: toWire(s.Write)})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FromAny converts a Descriptor, *Descriptor or plain mapping into a
// Descriptor. Unknown keys are rejected and Options is kept verbatim, so a
// mapping and the equivalent typed value produce the same Descriptor.
func FromAny(v interface{}) (Descriptor, error) {
	switch m := v.(type) {
	case Descriptor:
		return m, nil
	case *Descriptor:
		if m == nil {
			return Descriptor{}, fmt.Errorf("nil mount descriptor")
		}
		return *m, nil
	case map[string]interface{}, map[string]string:
		var d Descriptor
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &d,
		})
		if err != nil {
			return Descriptor{}, err
		}
		if err := dec.Decode(m); err != nil {
			return Descriptor{}, fmt.Errorf("invalid mount descriptor: %w", err)
		}
		return d, nil
	default:
		return Descriptor{}, fmt.Errorf("unsupported mount descriptor type %T", v)
	}
}

// SetFromAny normalizes a mapping with "read" and "write" lists.
func SetFromAny(v interface{}) (Set, error) {
	switch m := v.(type) {
	case Set:
		return m, nil
	case *Set:
		if m == nil {
			return Set{}, nil
		}
		return *m, nil
	case map[string]interface{}:
		var set Set
		for key, raw := range m {
			items, ok := raw.([]interface{})
			if !ok && raw != nil {
				return Set{}, fmt.Errorf("mounts.%s must be a list", key)
			}
			var ds []Descriptor
			if raw != nil {
				ds = make([]Descriptor, 0, len(items))
			}
			for i, item := range items {
				d, err := FromAny(item)
				if err != nil {
					return Set{}, fmt.Errorf("mounts.%s[%d]: %w", key, i, err)
				}
				ds = append(ds, d)
			}
			switch Direction(key) {
			case Read:
				set.Read = ds
			case Write:
				set.Write = ds
			default:
				return Set{}, fmt.Errorf("unknown mounts key %q", key)
			}
		}
		return set, nil
	default:
		return Set{}, fmt.Errorf("unsupported mounts type %T", v)
	}
}
