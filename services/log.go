package services

import (
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
	"github.com/sirupsen/logrus"
)

func logInfo(component, msg string, fields map[string]interface{}) {
	utils.InfoLogger.WithFields(logrus.Fields(fields)).WithField("component", component).Info(msg)
}

func logError(component, msg string, err error, fields map[string]interface{}) {
	utils.ErrorLogger.WithFields(logrus.Fields(fields)).
		WithField("component", component).
		WithError(err).
		Error(msg)
}
