package menu

import (
	"fmt"
	"strconv"
	"strings"
)

// Choice identifies one menu operation
type Choice int

const (
	ChoiceListBuckets Choice = iota + 1
	ChoiceUploadFile
	ChoiceDownloadFile
	ChoiceListInstances
	ChoiceInstancePower
	ChoiceViewLogs
	ChoiceExit
)

// Label returns the menu text for a choice
func (c Choice) Label() string {
	switch c {
	case ChoiceListBuckets:
		return "List S3 buckets"
	case ChoiceUploadFile:
		return "Upload a file to S3"
	case ChoiceDownloadFile:
		return "Download a file from S3"
	case ChoiceListInstances:
		return "List EC2 instances"
	case ChoiceInstancePower:
		return "Start, stop or reboot an instance"
	case ChoiceViewLogs:
		return "View recent logs"
	case ChoiceExit:
		return "Exit"
	}
	return fmt.Sprintf("choice(%d)", int(c))
}

// Labels returns the menu texts in display order
func Labels() []string {
	labels := make([]string, 0, int(ChoiceExit))
	for c := ChoiceListBuckets; c <= ChoiceExit; c++ {
		labels = append(labels, c.Label())
	}
	return labels
}

// ParseChoice parses a line of user input into a menu choice
func ParseChoice(s string) (Choice, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil || n < int(ChoiceListBuckets) || n > int(ChoiceExit) {
		return 0, fmt.Errorf("invalid option %q: enter a number between 1 and %d", s, int(ChoiceExit))
	}
	return Choice(n), nil
}
