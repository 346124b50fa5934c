package runtime

import (
	"math"

	"github.com/wudi/hey/registry"
	"github.com/wudi/hey/values"
)

// GetAllBuiltinClasses aggregates every builtin class descriptor the runtime
// ships: the exception hierarchy, the concurrency primitives, the iterator
// family, and the database extension surfaces.
func GetAllBuiltinClasses() []*registry.ClassDescriptor {
	var all []*registry.ClassDescriptor
	all = append(all, GetClasses()...)
	all = append(all, GetConcurrencyClasses()...)
	all = append(all, GetIteratorClasses()...)
	all = append(all, GetMySQLiClasses()...)
	all = append(all, GetPDOClassDescriptors()...)
	return all
}

// GetAllBuiltinInterfaces aggregates every builtin interface descriptor.
func GetAllBuiltinInterfaces() []*registry.Interface {
	return GetInterfaces()
}

// GetAllBuiltinConstants aggregates every builtin global constant: the core
// language constants plus the constants contributed by individual
// extensions (currently PDO).
func GetAllBuiltinConstants() []*registry.ConstantDescriptor {
	byName := make(map[string]*values.Value)
	for name, v := range coreLanguageConstants() {
		byName[name] = v
	}
	for name, v := range GetPDOGlobalConstants() {
		byName[name] = v
	}

	descs := make([]*registry.ConstantDescriptor, 0, len(byName))
	for name, v := range byName {
		descs = append(descs, &registry.ConstantDescriptor{
			Name:       name,
			Visibility: "public",
			Value:      v,
			IsFinal:    true,
		})
	}
	return descs
}

// coreLanguageConstants returns the predefined constants every PHP script
// can rely on being present, independent of any loaded extension.
func coreLanguageConstants() map[string]*values.Value {
	return map[string]*values.Value{
		"PHP_EOL":          values.NewString("\n"),
		"PHP_VERSION":      values.NewString("8.3.0"),
		"PHP_MAJOR_VERSION": values.NewInt(8),
		"PHP_MINOR_VERSION": values.NewInt(3),
		"PHP_OS":           values.NewString("Linux"),
		"PHP_OS_FAMILY":    values.NewString("Linux"),
		"PHP_SAPI":         values.NewString("cli"),

		"PHP_INT_MAX":  values.NewInt(9223372036854775807),
		"PHP_INT_MIN":  values.NewInt(-9223372036854775808),
		"PHP_INT_SIZE": values.NewInt(8),
		"PHP_FLOAT_EPSILON": values.NewFloat(2.220446049250313e-16),
		"PHP_FLOAT_MAX":     values.NewFloat(1.7976931348623157e+308),
		"PHP_FLOAT_MIN":     values.NewFloat(2.2250738585072014e-308),
		"PHP_FLOAT_DIG":     values.NewInt(15),

		"M_PI":      values.NewFloat(3.14159265358979323846),
		"M_E":       values.NewFloat(2.7182818284590452354),
		"M_SQRT2":   values.NewFloat(1.41421356237309504880),
		"M_LN2":     values.NewFloat(0.69314718055994530942),
		"M_LN10":    values.NewFloat(2.30258509299404568402),
		"M_LOG2E":   values.NewFloat(1.4426950408889634074),
		"M_LOG10E":  values.NewFloat(0.43429448190325176),

		"NAN": values.NewFloat(math.NaN()),
		"INF": values.NewFloat(math.Inf(1)),

		"E_ERROR":             values.NewInt(1),
		"E_WARNING":           values.NewInt(2),
		"E_PARSE":             values.NewInt(4),
		"E_NOTICE":            values.NewInt(8),
		"E_CORE_ERROR":        values.NewInt(16),
		"E_CORE_WARNING":      values.NewInt(32),
		"E_COMPILE_ERROR":     values.NewInt(64),
		"E_COMPILE_WARNING":   values.NewInt(128),
		"E_USER_ERROR":        values.NewInt(256),
		"E_USER_WARNING":      values.NewInt(512),
		"E_USER_NOTICE":       values.NewInt(1024),
		"E_STRICT":            values.NewInt(2048),
		"E_RECOVERABLE_ERROR": values.NewInt(4096),
		"E_DEPRECATED":        values.NewInt(8192),
		"E_USER_DEPRECATED":   values.NewInt(16384),
		"E_ALL":               values.NewInt(30719),

		"SORT_REGULAR":     values.NewInt(0),
		"SORT_NUMERIC":     values.NewInt(1),
		"SORT_STRING":      values.NewInt(2),
		"SORT_DESC":        values.NewInt(3),
		"SORT_ASC":         values.NewInt(4),
		"SORT_FLAG_CASE":   values.NewInt(8),
		"SORT_NATURAL":     values.NewInt(6),

		"JSON_PRETTY_PRINT":       values.NewInt(128),
		"JSON_UNESCAPED_SLASHES":  values.NewInt(64),
		"JSON_UNESCAPED_UNICODE":  values.NewInt(256),
		"JSON_THROW_ON_ERROR":     values.NewInt(4194304),
		"JSON_FORCE_OBJECT":       values.NewInt(16),

		"STR_PAD_RIGHT": values.NewInt(1),
		"STR_PAD_LEFT":  values.NewInt(0),
		"STR_PAD_BOTH":  values.NewInt(2),

		"COUNT_NORMAL":    values.NewInt(0),
		"COUNT_RECURSIVE": values.NewInt(1),

		"ARRAY_FILTER_USE_KEY":  values.NewInt(1),
		"ARRAY_FILTER_USE_BOTH": values.NewInt(2),
	}
}
