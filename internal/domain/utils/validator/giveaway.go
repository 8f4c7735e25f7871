package validator

import (
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the calendar format organizers use in giveaway submissions.
const TimeLayout = "2006-01-02 15:04"

func GiveawayTime(value string, _ map[string]interface{}) bool {
	_, err := time.Parse(TimeLayout, strings.TrimSpace(value))
	return err == nil
}

func GiveawayPeriod(publishAt, endAt string, _ map[string]interface{}) bool {
	publish, err := time.Parse(TimeLayout, strings.TrimSpace(publishAt))
	if err != nil {
		return false
	}
	end, err := time.Parse(TimeLayout, strings.TrimSpace(endAt))
	if err != nil {
		return false
	}
	return end.After(publish)
}

// ChannelHandle accepts a public @username or a raw numeric chat ID.
func ChannelHandle(value string, _ map[string]interface{}) bool {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "@") {
		return len(value) > 1
	}
	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}

func WinnerCount(value string, _ map[string]interface{}) bool {
	count, err := strconv.Atoi(strings.TrimSpace(value))
	return err == nil && count > 0
}
