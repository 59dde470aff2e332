package feemanager

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "feemanager")
