// Package tradingsession は東京証券取引所の立会時間（取引セッション）を計算します。
//
// 前場 9:00〜11:30、後場 12:30〜15:00（日本時間）、月曜〜金曜。
// 祝日は考慮しません。
package tradingsession

import (
	"time"
)

// TimezoneName は取引所のタイムゾーン識別子です。
const TimezoneName = "Asia/Tokyo"

const (
	openHour  = 9  // 前場の開始時刻
	closeHour = 15 // 後場の終了時刻
)

// location は取引所のタイムゾーンです。
// tzdataが無い環境では固定オフセット（JSTは夏時間なし）にフォールバックします。
var location = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation(TimezoneName)
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// Location は取引所のタイムゾーンを返します。
func Location() *time.Location {
	return location
}

// IsOpen は指定時刻に取引所が立会中かどうかを返します。
//
// 境界の扱い（分単位）:
//   - 前場: 9:00〜10:59 に加えて 11時台は 11:30 まで立会中
//   - 後場: 12時〜14時台、および 12:30 以降の12時台
//   - 15:00 ちょうどは立会終了
func IsOpen(now time.Time) bool {
	jst := now.In(location)
	hour, minute := jst.Hour(), jst.Minute()

	if !isWeekday(jst) {
		return false
	}

	morning := (hour >= openHour && hour < 11) || (hour == 11 && minute <= 30)
	afternoon := (hour >= 12 && hour < closeHour) || (hour == 12 && minute >= 30)
	return morning || afternoon
}

// NextOpen は次の前場開始（9:00）を返します。
// 当日の9時台以降であれば翌日とし、その後土日をスキップします。
func NextOpen(now time.Time) time.Time {
	return nextAt(now, openHour)
}

// NextClose は次の後場終了（15:00）を返します。
// 当日の15時台以降であれば翌日とし、その後土日をスキップします。
func NextClose(now time.Time) time.Time {
	return nextAt(now, closeHour)
}

// nextAt は hour:00 の次の発生時刻を取引所タイムゾーンで返します。
func nextAt(now time.Time, hour int) time.Time {
	jst := now.In(location)
	next := time.Date(jst.Year(), jst.Month(), jst.Day(), hour, 0, 0, 0, location)

	if jst.Hour() >= hour {
		next = next.AddDate(0, 0, 1)
	}
	for !isWeekday(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func isWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
