package service

import (
	"testing"

	"go.uber.org/goleak"
)

// firebase-admin pulls in opencensus, whose view worker starts at init and never exits
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}
