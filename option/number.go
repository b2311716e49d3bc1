package option

import "fmt"

// Number identifies an option in a message.
type Number uint16

// option number
/*
	+-----+----+---+---+---+----------------+--------+--------+---------+
	| No. | C  | U | N | R | Name           | Format | Length | Default |
	+-----+----+---+---+---+----------------+--------+--------+---------+
	|   1 | x  |   |   | x | If-Match       | opaque | 0-8    | (none)  |
	|   3 | x  | x | - |   | Uri-Host       | string | 1-255  | (see    |
	|     |    |   |   |   |                |        |        | below)  |
	|   4 |    |   |   | x | ETag           | opaque | 0-8    | (none)  |
	|   5 | x  |   |   |   | If-None-Match  | empty  | 0      | (none)  |
	|   6 |    | x | - |   | Observe        | uint   | 0-4    | (none)  |
	|   7 | x  | x | - |   | Uri-Port       | uint   | 0-2    | (see    |
	|     |    |   |   |   |                |        |        | below)  |
	|   8 |    |   |   | x | Location-Path  | string | 0-255  | (none)  |
	|  11 | x  | x | - | x | Uri-Path       | string | 0-255  | (none)  |
	|  12 |    |   |   |   | Content-Format | uint   | 0-2    | (none)  |
	|  14 |    | x | - |   | Max-Age        | uint   | 0-4    | 60      |
	|  15 | x  | x | - | x | Uri-Query      | string | 0-255  | (none)  |
	|  17 | x  |   |   |   | Accept         | uint   | 0-2    | (none)  |
	|  20 |    |   |   | x | Location-Query | string | 0-255  | (none)  |
	|  35 | x  | x | - |   | Proxy-Uri      | string | 1-1034 | (none)  |
	|  39 | x  | x | - |   | Proxy-Scheme   | string | 1-255  | (none)  |
	|  60 |    |   | x |   | Size1          | uint   | 0-4    | (none)  |
	| 284 |    |   | x |   | No-Response    | uint   | 0-1    | 0       |
	+-----+----+---+---+---+----------------+--------+--------+---------+

	C=Critical, U=Unsafe, N=No-Cache-Key, R=Repeatable
*/
const (
	IfMatch       Number = 1
	URIHost       Number = 3
	ETag          Number = 4
	IfNoneMatch   Number = 5
	Observe       Number = 6
	URIPort       Number = 7
	LocationPath  Number = 8
	URIPath       Number = 11
	ContentFormat Number = 12
	MaxAge        Number = 14
	URIQuery      Number = 15
	Accept        Number = 17
	LocationQuery Number = 20
	ProxyURI      Number = 35
	ProxyScheme   Number = 39
	Size1         Number = 60
	NoResponse    Number = 284
)

const (
	criticalMask   = 0x01
	unsafeMask     = 0x02
	noCacheKeyMask = 0x1e
	noCacheKeyBits = 0x1c
)

// IsCritical reports whether a recipient that does not recognize the
// option must reject the message.
func (n Number) IsCritical() bool {
	return n&criticalMask != 0
}

// IsElective is the negation of IsCritical.
func (n Number) IsElective() bool {
	return n&criticalMask == 0
}

// IsUnsafeToForward reports whether a proxy that does not recognize the
// option must not forward it.
func (n Number) IsUnsafeToForward() bool {
	return n&unsafeMask != 0
}

func (n Number) IsSafeToForward() bool {
	return n&unsafeMask == 0
}

// IsNoCacheKey reports whether the option is excluded from the cache key.
// Only meaningful for safe-to-forward options.
func (n Number) IsNoCacheKey() bool {
	return n&noCacheKeyMask == noCacheKeyBits
}

func (n Number) IsCacheKey() bool {
	return n&noCacheKeyMask != noCacheKeyBits
}

// Name returns the registered option name, or the decimal number for
// unregistered options.
func (n Number) Name() string {
	if def, ok := LookupDef(n); ok {
		return def.Name
	}
	return fmt.Sprint(uint16(n))
}

func (n Number) String() string {
	if def, ok := LookupDef(n); ok {
		return fmt.Sprintf("%d(%s)", n, def.Name)
	}
	return fmt.Sprintf("%d", n)
}
