package factory

import (
	"fmt"
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weavetest"
	"github.com/iov-one/escrowd/x/escrow"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesis(t *testing.T) {
	Convey("Loading factories from genesis", t, func() {
		owner := weavetest.RandomAddr(t)
		db := store.MemStore()

		Convey("with an allowed template", func() {
			opts := weave.Options{
				"conf": []byte(fmt.Sprintf(`{"factory": {"metadata": {"schema": 1}, "owner": %q, "templates": [%q]}}`,
					owner, escrow.TemplateID)),
				"factory": []byte(fmt.Sprintf(`[{"owner": %q, "template_id": %q}, {"owner": %q, "template_id": %q}]`,
					owner, escrow.TemplateID, owner, escrow.TemplateID)),
			}
			So(Initializer{}.FromGenesis(opts, db), ShouldBeNil)

			conf, err := LoadConfiguration(db)
			So(err, ShouldBeNil)
			So(conf.Allows(escrow.TemplateID), ShouldBeTrue)

			objs, err := NewBucket().GetIndexed(db, OwnerIndex, owner)
			So(err, ShouldBeNil)
			So(objs, ShouldHaveLength, 2)
		})

		Convey("with a template that is not allowed", func() {
			opts := weave.Options{
				"factory": []byte(fmt.Sprintf(`[{"owner": %q, "template_id": %q}]`, owner, escrow.TemplateID)),
			}
			err := Initializer{}.FromGenesis(opts, db)
			So(errors.ErrInvalidInput.Is(err), ShouldBeTrue)
		})

		Convey("without any data", func() {
			So(Initializer{}.FromGenesis(weave.Options{}, db), ShouldBeNil)
		})
	})
}
