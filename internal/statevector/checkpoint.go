package statevector

// Checkpoint saves the current amplitudes so a later Revert can restore
// them. A second Checkpoint call overwrites whatever checkpoint was saved
// before it; there is no stack of checkpoints.
func (qv *QubitVector) Checkpoint() {
	buf := make(denseBuffer, qv.Size())
	buf.CopyFrom(qv.data)
	qv.checkpt = buf
}

// Revert restores the amplitudes saved by the last Checkpoint call. When
// keep is false the checkpoint is consumed and a further Revert without an
// intervening Checkpoint returns ErrNoCheckpoint; when keep is true the
// checkpoint remains available for repeated reverts (useful for replaying
// a circuit from the same point under many different measurement
// outcomes).
func (qv *QubitVector) Revert(keep bool) error {
	if qv.checkpt == nil {
		return ErrNoCheckpoint
	}
	qv.data.CopyFrom(qv.checkpt)
	if !keep {
		qv.checkpt = nil
	}
	return nil
}

// HasCheckpoint reports whether a checkpoint is currently available to
// Revert.
func (qv *QubitVector) HasCheckpoint() bool {
	return qv.checkpt != nil
}
