package handler

// DI for all handlers and models alike.

import (
	"database/sql"

	gpcrdb "github.com/CompGenomeLab/GPCRevolution-sub000/pkg/db"
	"github.com/CompGenomeLab/GPCRevolution-sub000/pkg/model"
)

type ServiceContext struct {
	DB      *sql.DB
	Catalog *gpcrdb.Catalog
	Files   *gpcrdb.DataDir
	Logos   *model.LogoCache
}
