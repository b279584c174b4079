package record

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notFoundErr struct{ nf bool }

func (e notFoundErr) Error() string  { return "store" }
func (e notFoundErr) NotFound() bool { return e.nf }

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(notFoundErr{nf: true}))
	assert.True(t, IsNotFound(fmt.Errorf("update: %w", notFoundErr{nf: true})))
	assert.False(t, IsNotFound(notFoundErr{nf: false}))
	assert.False(t, IsNotFound(fmt.Errorf("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestIs_WireShape(t *testing.T) {
	data, err := json.Marshal(Is("fldBusinessID", "65"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"conjunction":"and","filterSet":[{"fieldId":"fldBusinessID","operator":"is","value":"65"}]}`, string(data))
}

func TestRecord_Accessors(t *testing.T) {
	r := &Record{ID: "rec1", Fields: Fields{"Title": "Leak", "Occupancy": json.Number("3")}}
	assert.Equal(t, "Leak", r.String("Title"))
	assert.Equal(t, "", r.String("Occupancy"))
	assert.Equal(t, json.Number("3"), r.Value("Occupancy"))

	var nilRec *Record
	assert.Nil(t, nilRec.Value("Title"))
}

type detailErr struct{}

func (detailErr) Error() string  { return "store get: status 500" }
func (detailErr) Detail() string { return "upstream text" }

func TestErrorDetail(t *testing.T) {
	assert.Equal(t, "upstream text", ErrorDetail(fmt.Errorf("wrap: %w", detailErr{})))
	assert.Equal(t, "plain", ErrorDetail(fmt.Errorf("plain")))
}
