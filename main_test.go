package cstruct_test

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// The shared token parser keeps its cache worker for the process lifetime.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("github.com/karlseguin/ccache/v2.(*Cache).worker"))
}
