package ports

type StepMetrics interface {
	RecordTick(envs, reward, deliveries int)
	RecordEpisodeDone()
	RecordReset()
}
