package log

import "fmt"

// UserData tags the given value as user data (bucket/object names) so that it may be redacted by log processing.
func UserData(value any) string {
	return fmt.Sprintf("<ud>%v</ud>", value)
}
