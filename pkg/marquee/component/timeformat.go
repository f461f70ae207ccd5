package component

import (
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/BrandonKowalski/marquee/pkg/marquee/internal/logging"
)

// strftimeVerbs are the conversions the formatter knows; any other %x is
// copied through literally.
const strftimeVerbs = "AaBbCcDdeFHIjklMmnpRrSTtUuVvWwXxYyZz%"

// Strftime renders t with C strftime conversions. Unknown conversions are
// copied through.
func Strftime(format string, t time.Time) string {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(format) && strings.IndexByte(strftimeVerbs, format[i+1]) >= 0 {
			b.WriteByte('%')
			b.WriteByte(format[i+1])
			i++
			continue
		}
		b.WriteString("%%")
	}
	out, err := strftime.Format(b.String(), t)
	if err != nil {
		logging.GetInternalLogger().Warn("Bad time format", "format", format, "error", err)
		return format
	}
	return out
}
