package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColocatedListRoundtrip(t *testing.T) {
	var conf Conference
	conf.SetColocatedList([]string{"Workshop A", "Tutorial B"})
	assert.Equal(t, "Workshop A;Tutorial B", conf.ColocatedWith)
	assert.Equal(t, []string{"Workshop A", "Tutorial B"}, conf.ColocatedList())
}

func TestColocatedListEmptyAndWhitespace(t *testing.T) {
	conf := Conference{ColocatedWith: ""}
	assert.Empty(t, conf.ColocatedList())

	conf.ColocatedWith = " ; Workshop A ;; "
	assert.Equal(t, []string{"Workshop A"}, conf.ColocatedList())
}
