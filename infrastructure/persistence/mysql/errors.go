package mysql

import (
	"errors"
	"strings"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

// duplicateKeyIndex inspects a driver error for a unique-constraint
// violation (MySQL error 1062) and reports which index was hit. The index
// name is embedded in the driver message, e.g.
// "Duplicate entry 'x' for key 'orders.uq_orders_merchant_uid'".
func duplicateKeyIndex(err error) (string, bool) {
	var mysqlErr *mysqlDriver.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != 1062 {
		return "", false
	}

	msg := mysqlErr.Message
	start := strings.LastIndex(msg, "for key '")
	if start < 0 {
		return "", true
	}
	key := msg[start+len("for key '"):]
	key = strings.TrimSuffix(key, "'")
	// Strip a "table." prefix when present
	if dot := strings.LastIndex(key, "."); dot >= 0 {
		key = key[dot+1:]
	}
	return key, true
}
