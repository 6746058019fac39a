package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Parser converts raw sale-offer descriptors into SaleOffers, reporting data
// issues to its sink.
type Parser struct {
	refs References
	sink Sink
}

// NewParser returns a Parser validating against refs. A nil sink discards
// diagnostics.
func NewParser(refs References, sink Sink) *Parser {
	if sink == nil {
		sink = Discard
	}
	return &Parser{refs: refs, sink: sink}
}

// ParseOffers parses the sell_to value of one item.
//
// nil and empty input yield an empty result. Entries without a usable price or
// merchant are dropped; unknown merchants and locations are kept. Every
// problem is reported to the sink. The only error is ErrOffersNotSequence.
func (p *Parser) ParseOffers(raw any, itemLabel string) ([]SaleOffer, error) {
	entries, err := asSequence(raw)
	if err != nil {
		return nil, err
	}

	out := make([]SaleOffer, 0, len(entries))
	for i, entry := range entries {
		if o, ok := p.parseEntry(entry, i, itemLabel); ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (p *Parser) parseEntry(entry any, pos int, itemLabel string) (SaleOffer, bool) {
	fields, ok := asObject(entry)
	if !ok {
		p.warn(KindMalformedEntry, itemLabel, fmt.Sprintf("entry %d is not an object", pos))
		return SaleOffer{}, false
	}

	merchant, ok := stringField(fields, "npc")
	if !ok {
		p.warn(KindMalformedEntry, itemLabel, fmt.Sprintf("entry %d: npc is not a string", pos))
		return SaleOffer{}, false
	}
	location, ok := stringField(fields, "location")
	if !ok {
		p.warn(KindMalformedEntry, itemLabel, fmt.Sprintf("entry %d: location is not a string", pos))
		return SaleOffer{}, false
	}
	if merchant == "" {
		p.warn(KindMissingMerchant, itemLabel, fmt.Sprintf("entry %d has no npc", pos))
		return SaleOffer{}, false
	}

	rawPrice, present := fields["price"]
	if !present || rawPrice == nil {
		p.warn(KindMissingPrice, itemLabel, fmt.Sprintf("missing price for npc %s", merchant))
		return SaleOffer{}, false
	}
	price, ok := positiveInt(rawPrice)
	if !ok {
		p.warn(KindInvalidPrice, itemLabel, fmt.Sprintf("invalid price %v for npc %s", rawPrice, merchant))
		return SaleOffer{}, false
	}

	if !p.refs.Merchants.Contains(merchant) {
		p.info(KindUnknownMerchant, itemLabel, fmt.Sprintf("unknown npc %q", merchant))
	}
	if location != "" && !p.refs.Locations.Contains(location) {
		p.info(KindUnknownLocation, itemLabel, fmt.Sprintf("unknown location %q", location))
	}

	return SaleOffer{Merchant: merchant, Location: location, Price: price}, true
}

func (p *Parser) warn(k Kind, label, detail string) {
	p.sink.Emit(Event{Severity: SeverityWarning, Kind: k, ItemLabel: label, Detail: detail})
}

func (p *Parser) info(k Kind, label, detail string) {
	p.sink.Emit(Event{Severity: SeverityInfo, Kind: k, ItemLabel: label, Detail: detail})
}

func asSequence(raw any) ([]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, nil
	case []Record:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrOffersNotSequence, raw)
	}
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	default:
		return nil, false
	}
}

// stringField returns the trimmed string value of key. A missing or null key
// is an empty string; any other non-string value is rejected.
func stringField(fields map[string]any, key string) (string, bool) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", true
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// positiveInt reports whether v is a number with a positive integral value
// that fits in an int. Strings are never accepted.
func positiveInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, n > 0
	case int8:
		return fromInt64(int64(n))
	case int16:
		return fromInt64(int64(n))
	case int32:
		return fromInt64(int64(n))
	case int64:
		return fromInt64(n)
	case uint:
		return fromUint64(uint64(n))
	case uint8:
		return fromUint64(uint64(n))
	case uint16:
		return fromUint64(uint64(n))
	case uint32:
		return fromUint64(uint64(n))
	case uint64:
		return fromUint64(n)
	case float32:
		return fromFloat64(float64(n))
	case float64:
		return fromFloat64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return fromInt64(i)
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return fromFloat64(f)
	default:
		return 0, false
	}
}

func fromInt64(i int64) (int, bool) {
	if i <= 0 || i > math.MaxInt {
		return 0, false
	}
	return int(i), true
}

func fromUint64(u uint64) (int, bool) {
	if u == 0 || u > math.MaxInt {
		return 0, false
	}
	return int(u), true
}

func fromFloat64(f float64) (int, bool) {
	if math.IsNaN(f) || f <= 0 || f != math.Trunc(f) || f >= math.MaxInt64 {
		return 0, false
	}
	return fromInt64(int64(f))
}
