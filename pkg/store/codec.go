package store

import "encoding/json"

func encodeRun(r RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func decodeRun(data []byte) (RunRecord, error) {
	var r RunRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return RunRecord{}, err
	}
	return r, nil
}

func encodeGeneration(g GenerationRecord) ([]byte, error) {
	return json.Marshal(g)
}

func decodeGeneration(data []byte) (GenerationRecord, error) {
	var g GenerationRecord
	if err := json.Unmarshal(data, &g); err != nil {
		return GenerationRecord{}, err
	}
	return g, nil
}
