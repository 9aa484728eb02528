package table

import (
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
)

// TypeTag is the storage type of a column spelled the way dataframe libraries
// print their dtypes (Int64, Float64, Utf8, Boolean, Datetime(us), ...).
type TypeTag string

const (
	TagUtf8        TypeTag = "Utf8"
	TagBoolean     TypeTag = "Boolean"
	TagDate        TypeTag = "Date"
	TagTime        TypeTag = "Time"
	TagCategorical TypeTag = "Categorical"
	TagBinary      TypeTag = "Binary"
	TagDecimal     TypeTag = "Decimal"
	TagList        TypeTag = "List"
	TagStruct      TypeTag = "Struct"
	TagNull        TypeTag = "Null"
)

// String implements fmt.Stringer.
func (t TypeTag) String() string { return string(t) }

// TagOf maps an Arrow data type to its TypeTag.
func TagOf(dt arrow.DataType) TypeTag {
	if dt == nil {
		return TagNull
	}
	switch dt.ID() {
	case arrow.INT8:
		return "Int8"
	case arrow.INT16:
		return "Int16"
	case arrow.INT32:
		return "Int32"
	case arrow.INT64:
		return "Int64"
	case arrow.UINT8:
		return "UInt8"
	case arrow.UINT16:
		return "UInt16"
	case arrow.UINT32:
		return "UInt32"
	case arrow.UINT64:
		return "UInt64"
	case arrow.FLOAT16:
		return "Float16"
	case arrow.FLOAT32:
		return "Float32"
	case arrow.FLOAT64:
		return "Float64"
	case arrow.BOOL:
		return TagBoolean
	case arrow.STRING, arrow.LARGE_STRING:
		return TagUtf8
	case arrow.BINARY, arrow.LARGE_BINARY, arrow.FIXED_SIZE_BINARY:
		return TagBinary
	case arrow.DATE32, arrow.DATE64:
		return TagDate
	case arrow.TIME32, arrow.TIME64:
		return TagTime
	case arrow.TIMESTAMP:
		ts := dt.(*arrow.TimestampType)
		return TypeTag(fmt.Sprintf("Datetime(%s)", ts.Unit))
	case arrow.DURATION:
		d := dt.(*arrow.DurationType)
		return TypeTag(fmt.Sprintf("Duration(%s)", d.Unit))
	case arrow.DICTIONARY:
		d := dt.(*arrow.DictionaryType)
		switch d.ValueType.ID() {
		case arrow.STRING, arrow.LARGE_STRING:
			return TagCategorical
		}
		return TypeTag("Dictionary(" + string(TagOf(d.ValueType)) + ")")
	case arrow.DECIMAL128, arrow.DECIMAL256:
		return TagDecimal
	case arrow.LIST, arrow.LARGE_LIST, arrow.FIXED_SIZE_LIST:
		return TagList
	case arrow.STRUCT:
		return TagStruct
	case arrow.NULL:
		return TagNull
	}
	return TypeTag(dt.Name())
}
