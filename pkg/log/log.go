package log

import (
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

func New(version string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"version": version,
		"program": "refurb",
	})
}

// SetLevel sets the global log level. An invalid level is logged and ignored.
func SetLevel(level string, logE *logrus.Entry) {
	if level == "" {
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logerr.WithError(logE, err).WithField("log_level", level).Error("the log level is invalid")
		return
	}
	logrus.SetLevel(lvl)
}
