// Package parttable decodes esp-idf partition table images: a fixed
// 32-byte-per-record descriptor of flash regions, followed by a 32-byte
// hash trailer.
package parttable

import "fmt"

// PartitionTypeKind discriminates the PartitionType tagged union.
type PartitionTypeKind int

const (
	TypeApp PartitionTypeKind = iota
	TypeData
	TypeAny
	TypeCustom
	TypeInvalid
)

// PartitionType is a closed sum with explicit Custom/Invalid arms so every
// byte value round-trips.
type PartitionType struct {
	Kind  PartitionTypeKind
	Value uint8 // populated for TypeCustom and TypeInvalid
}

func partitionTypeFromByte(v uint8) PartitionType {
	switch {
	case v == 0:
		return PartitionType{Kind: TypeApp}
	case v == 1:
		return PartitionType{Kind: TypeData}
	case v >= 64 && v <= 254:
		return PartitionType{Kind: TypeCustom, Value: v}
	case v == 255:
		return PartitionType{Kind: TypeAny}
	default:
		return PartitionType{Kind: TypeInvalid, Value: v}
	}
}

func (t PartitionType) String() string {
	switch t.Kind {
	case TypeApp:
		return "app"
	case TypeData:
		return "data"
	case TypeAny:
		return fmt.Sprintf("%x", 255)
	case TypeCustom, TypeInvalid:
		return fmt.Sprintf("%x", t.Value)
	default:
		return "unknown"
	}
}

// SubtypeKind discriminates the Subtype tagged union.
type SubtypeKind int

const (
	SubAppFactory SubtypeKind = iota
	SubAppOta0
	SubAppOta1
	SubAppOta2
	SubAppOta3
	SubAppOta4
	SubAppOta5
	SubAppOta6
	SubAppOta7
	SubAppOta8
	SubAppOta9
	SubAppOta10
	SubAppOta11
	SubAppOta12
	SubAppOta13
	SubAppOta14
	SubAppOta15
	SubAppTest
	SubDataOta
	SubDataPhy
	SubDataNvs
	SubDataCoreDump
	SubDataNvsKeys
	SubDataEfuse
	SubDataEspHttpd
	SubDataFat
	SubDataSpiffs
	SubAny
	SubInvalid
	SubCustom
)

// Subtype is a closed sum whose valid arms depend on the partition's
// PartitionType; Invalid/Custom round-trip any byte value.
type Subtype struct {
	Kind  SubtypeKind
	Value uint8 // populated for SubInvalid and SubCustom
}

// appOtaSubtypes maps ota slot N (0-15) to its SubtypeKind.
var appOtaSubtypes = [...]SubtypeKind{
	SubAppOta0, SubAppOta1, SubAppOta2, SubAppOta3,
	SubAppOta4, SubAppOta5, SubAppOta6, SubAppOta7,
	SubAppOta8, SubAppOta9, SubAppOta10, SubAppOta11,
	SubAppOta12, SubAppOta13, SubAppOta14, SubAppOta15,
}

func subtypeFromByte(t PartitionType, v uint8) Subtype {
	switch t.Kind {
	case TypeApp:
		switch {
		case v == 0:
			return Subtype{Kind: SubAppFactory}
		case v >= 16 && v <= 31:
			return Subtype{Kind: appOtaSubtypes[v-16]}
		case v == 32:
			return Subtype{Kind: SubAppTest}
		default:
			return Subtype{Kind: SubInvalid, Value: v}
		}
	case TypeData:
		switch v {
		case 0:
			return Subtype{Kind: SubDataOta}
		case 1:
			return Subtype{Kind: SubDataPhy}
		case 2:
			return Subtype{Kind: SubDataNvs}
		case 3:
			return Subtype{Kind: SubDataCoreDump}
		case 4:
			return Subtype{Kind: SubDataNvsKeys}
		case 5:
			return Subtype{Kind: SubDataEfuse}
		case 128:
			return Subtype{Kind: SubDataEspHttpd}
		case 129:
			return Subtype{Kind: SubDataFat}
		case 130:
			return Subtype{Kind: SubDataSpiffs}
		default:
			return Subtype{Kind: SubInvalid, Value: v}
		}
	case TypeCustom:
		if v == 255 {
			return Subtype{Kind: SubAny}
		}
		return Subtype{Kind: SubCustom, Value: v}
	case TypeAny:
		return Subtype{Kind: SubAny}
	default: // TypeInvalid
		return Subtype{Kind: SubInvalid, Value: v}
	}
}

func (s Subtype) String() string {
	switch s.Kind {
	case SubAppFactory:
		return "factory"
	case SubAppOta0:
		return "ota_0"
	case SubAppOta1:
		return "ota_1"
	case SubAppOta2:
		return "ota_2"
	case SubAppOta3:
		return "ota_3"
	case SubAppOta4:
		return "ota_4"
	case SubAppOta5:
		return "ota_5"
	case SubAppOta6:
		return "ota_6"
	case SubAppOta7:
		return "ota_7"
	case SubAppOta8:
		return "ota_8"
	case SubAppOta9:
		return "ota_9"
	case SubAppOta10:
		return "ota_10"
	case SubAppOta11:
		return "ota_11"
	case SubAppOta12:
		return "ota_12"
	case SubAppOta13:
		return "ota_13"
	case SubAppOta14:
		return "ota_14"
	case SubAppOta15:
		return "ota_15"
	case SubAppTest:
		return "test"
	case SubDataOta:
		return "ota"
	case SubDataPhy:
		return "phy"
	case SubDataNvs:
		return "nvs"
	case SubDataCoreDump:
		return "coredump"
	case SubDataNvsKeys:
		return "nvs_keys"
	case SubDataEfuse:
		return "efuse"
	case SubDataEspHttpd:
		return "esphttpd"
	case SubDataFat:
		return "fat"
	case SubDataSpiffs:
		return "spiffs"
	case SubAny:
		return "0xff"
	case SubInvalid, SubCustom:
		return fmt.Sprintf("%x", s.Value)
	default:
		return "unknown"
	}
}
