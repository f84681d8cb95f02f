package domain

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// ProfessionList is a technician's list of service specialties.
//
// Clients historically submit the field as a bare string, a string array, or
// garbage, and old documents may still hold a scalar. The codecs below absorb
// all of that: a string becomes a one-element list, an array stays a list,
// and any other shape normalizes to an empty list. Serialization always
// produces an array.
type ProfessionList []string

func (p *ProfessionList) UnmarshalJSON(data []byte) error {
	// The null literal would otherwise no-op into the string branch and
	// produce a bogus one-element list holding "".
	if string(data) == "null" {
		*p = ProfessionList{}
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*p = ProfessionList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*p = ProfessionList(many)
		return nil
	}

	// Numbers, objects, mixed arrays: documented policy is to reset to empty
	// rather than reject the payload.
	*p = ProfessionList{}
	return nil
}

func (p ProfessionList) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(p))
}

func (p *ProfessionList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.String:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			*p = ProfessionList{}
			return nil
		}
		*p = ProfessionList{s}
		return nil
	case bsontype.Array:
		var many []string
		if err := bson.UnmarshalValue(t, data, &many); err != nil {
			*p = ProfessionList{}
			return nil
		}
		*p = ProfessionList(many)
		return nil
	case bsontype.Null, bsontype.Undefined:
		*p = nil
		return nil
	default:
		*p = ProfessionList{}
		return nil
	}
}

func (p ProfessionList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if p == nil {
		p = ProfessionList{}
	}
	return bson.MarshalValue([]string(p))
}
