//go:generate mockgen -destination=mock_sequencer.go -package=sequencer github.com/soclab/emifup/sequencer Sequencer

package sequencer
