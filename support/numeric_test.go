package support

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckedAdd(t *testing.T) {
	tests := []struct {
		name   string
		a, b   uint8
		want   uint8
		wantOK bool
	}{
		{name: "zero plus zero", a: 0, b: 0, want: 0, wantOK: true},
		{name: "fits", a: 100, b: 55, want: 155, wantOK: true},
		{name: "exactly max", a: 200, b: 55, want: math.MaxUint8, wantOK: true},
		{name: "overflow by one", a: 200, b: 56, want: 0, wantOK: false},
		{name: "overflow max plus max", a: math.MaxUint8, b: math.MaxUint8, want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CheckedAdd(tt.a, tt.b)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckedSub(t *testing.T) {
	tests := []struct {
		name   string
		a, b   uint64
		want   uint64
		wantOK bool
	}{
		{name: "to zero", a: 10, b: 10, want: 0, wantOK: true},
		{name: "fits", a: 100, b: 10, want: 90, wantOK: true},
		{name: "underflow", a: 100, b: 1000, want: 0, wantOK: false},
		{name: "zero minus one", a: 0, b: 1, want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CheckedSub(tt.a, tt.b)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentities(t *testing.T) {
	assert.Equal(t, uint32(0), Zero[uint32]())
	assert.Equal(t, uint32(1), One[uint32]())
}

type remark struct{}

func (remark) Name() string { return "test.remark" }

func TestCallName(t *testing.T) {
	assert.Equal(t, "<nil>", CallName(nil))
	assert.Equal(t, "test.remark", CallName(remark{}))
}

func TestIsNilCall(t *testing.T) {
	var typedNil *remark
	var nilCall Call

	assert.True(t, IsNilCall(nil))
	assert.True(t, IsNilCall(nilCall))
	assert.True(t, IsNilCall(typedNil))
	assert.True(t, IsNilCall(Call(typedNil)))
	assert.False(t, IsNilCall(remark{}))
	assert.False(t, IsNilCall(&remark{}))
	assert.Equal(t, "<nil>", CallName(typedNil))
}
