package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// parseID parses a record id argument. Ids are positive integers.
func parseID(arg, resource string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id '%s': ids are positive integers", resource, arg)
	}
	return id, nil
}

// parseIDs parses every argument, also accepting comma-separated lists.
func parseIDs(args []string, resource string) ([]int64, error) {
	var ids []int64
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, err := parseID(part, resource)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
