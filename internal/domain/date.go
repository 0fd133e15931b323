package domain

import (
	"fmt"
	"time"
)

// DateFormat 是本地日历日的统一格式。
const DateFormat = "2006-01-02"

// Date 表示一个不带时区的日历日。
// 所有跨日计算都基于日期分量，夏令时切换不会产生偏差。
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf 取时间在其自身时区下所属的日历日（本地零点边界，而非 UTC）。
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate 解析 YYYY-MM-DD 格式的日期。
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String 输出 YYYY-MM-DD。
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// AddDays 返回偏移 n 天后的日历日。
// 借助 UTC 正午构造 time.Time 做分量运算，避免墙钟时长减法。
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return DateOf(t)
}

// Before 按日历序比较。
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Clock 提供当前时间，注入后便于在测试中固定“今天”。
type Clock interface {
	Now() time.Time
}

// SystemClock 使用设备本地时间。
type SystemClock struct{}

// Now 返回设备当前时间。
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock 在测试中固定当前时间。
type FixedClock struct {
	T time.Time
}

// Now 返回固定时间。
func (c FixedClock) Now() time.Time {
	return c.T
}
