package sink

import (
	"regexp"

	"github.com/rotisserie/eris"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

func checkTable(table string) error {
	if !tableName.MatchString(table) {
		return eris.Errorf("sink: invalid table name %q", table)
	}
	return nil
}
