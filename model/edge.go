package model

import "github.com/lib/pq"

// Edge 对应路网中一条有向路段
type Edge struct {
	ID         uint           `json:"-" gorm:"primaryKey"`
	From       string         `json:"from" gorm:"index"`
	To         string         `json:"to" gorm:"index"`
	Dist       float64        `json:"dist"`                                 // 距离 (米), 为 0 时加载后用 Haversine 自动计算
	Speed      float64        `json:"speed,omitempty"`                      // 畅通速度 (km/h), 为 0 时按道路等级取默认值
	TravelTime float64        `json:"travel_time,omitempty"`                // 通行时间 (秒), 为 0 时按 Dist/Speed 计算
	Highway    pq.StringArray `json:"highway,omitempty" gorm:"type:text[]"` // OSM 道路等级标签, 如 ["primary"]
	Name       string         `json:"name,omitempty"`                       // 街道名称
	Oneway     bool           `json:"oneway"`                               // 是否单行道 (非单行道加载时会补反向边)
}

// MapData 用于解析整个 JSON 地图文件
type MapData struct {
	Meta  map[string]interface{} `json:"meta"` // 存版本号等元数据
	Nodes []Node                 `json:"nodes"`
	Edges []Edge                 `json:"edges"`
}

// 各道路等级的默认畅通速度 (km/h)
// 数据源没给 maxspeed 时用这些值估算通行时间
const (
	SpeedMotorway    = 100.0 // 高速公路
	SpeedTrunk       = 85.0  // 快速路
	SpeedPrimary     = 65.0  // 主干道
	SpeedSecondary   = 55.0  // 次干道
	SpeedTertiary    = 45.0  // 支路
	SpeedResidential = 30.0  // 居住区道路
	SpeedService     = 20.0  // 辅路/内部道路
	SpeedFallback    = 40.0  // 未知等级的兜底速度
)

// DefaultSpeed 根据道路等级标签返回默认畅通速度 (km/h)
// 一条边可能带多个等级标签 (OSM 合并路段时会出现), 取其中最快的
func DefaultSpeed(highway []string) float64 {
	best := 0.0
	for _, h := range highway {
		s := speedForClass(h)
		if s > best {
			best = s
		}
	}
	if best == 0 {
		return SpeedFallback
	}
	return best
}

func speedForClass(class string) float64 {
	switch class {
	case "motorway", "motorway_link":
		return SpeedMotorway
	case "trunk", "trunk_link":
		return SpeedTrunk
	case "primary", "primary_link":
		return SpeedPrimary
	case "secondary", "secondary_link":
		return SpeedSecondary
	case "tertiary", "tertiary_link":
		return SpeedTertiary
	case "residential", "living_street", "unclassified":
		return SpeedResidential
	case "service":
		return SpeedService
	default:
		return 0
	}
}

// ComputeTravelTime 按距离和速度估算通行时间 (秒)
// speed 单位是 km/h, 先换算成 m/s
func ComputeTravelTime(distMeters, speedKph float64) float64 {
	if speedKph <= 0 {
		speedKph = SpeedFallback
	}
	return distMeters / (speedKph / 3.6)
}
